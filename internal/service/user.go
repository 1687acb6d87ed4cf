package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
	"github.com/BuzzLyutic/collabtask-api/internal/repo"
)

type UserService struct {
	users  repo.UserRepository
	events repo.NotificationRepository
}

func NewUserService(users repo.UserRepository, events repo.NotificationRepository) *UserService {
	return &UserService{
		users:  users,
		events: events,
	}
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Create заводит пользователя. Выдача учеток — только админам
func (s *UserService) Create(ctx context.Context, actor model.User, in CreateUserInput) (model.User, error) {
	if !actor.IsAdmin() {
		return model.User{}, ErrForbidden
	}

	if strings.TrimSpace(in.Name) == "" || !strings.Contains(in.Email, "@") || len(in.Password) < 8 {
		return model.User{}, ErrValidation
	}
	if in.Role == "" {
		in.Role = model.RoleEmployee
	}
	switch in.Role {
	case model.RoleAdmin, model.RoleSemiAdmin, model.RoleEmployee:
	default:
		return model.User{}, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	return s.users.Create(ctx, model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
	})
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	return s.users.Get(ctx, id)
}

// Notifications — доставленные уведомления текущего пользователя
func (s *UserService) Notifications(ctx context.Context, actor model.User, limit int) ([]model.Delivery, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.events.ListForUser(ctx, actor.ID, limit)
}
