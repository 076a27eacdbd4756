package service

import (
	"fmt"
	"strings"
	"time"

	"stockfeed/internal/models"
	"stockfeed/internal/registry"
	"stockfeed/internal/repository"

	"github.com/google/uuid"
)

type UserService interface {
	// Login finds or creates the user for an email. The id assigned at first
	// sight is stable for the lifetime of the store.
	Login(email string) (*models.User, error)
	GetUser(id string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	registry *registry.Registry
}

func NewUserService(userRepo repository.UserRepository, reg *registry.Registry) UserService {
	return &userService{userRepo: userRepo, registry: reg}
}

func (s *userService) Login(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		user = &models.User{
			ID:               uuid.New().String(),
			Email:            email,
			RegistrationDate: time.Now().Format(time.RFC3339),
		}
		if err := s.userRepo.SaveUser(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	// Every known user owns a subscription set, empty at creation.
	s.registry.GetOrCreate(user.ID)

	return user, nil
}

func (s *userService) GetUser(id string) (*models.User, error) {
	return s.userRepo.GetUserByID(id)
}
