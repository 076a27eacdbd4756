package models

type User struct {
	ID               string `json:"id" bson:"_id"`
	Email            string `json:"email" bson:"email"`
	RegistrationDate string `json:"registration_date" bson:"registration_date"`
}
