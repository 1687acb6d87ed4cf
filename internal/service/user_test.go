package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

func TestUserService_Create(t *testing.T) {
	admin := model.User{ID: 1, Role: model.RoleAdmin}
	semiAdmin := model.User{ID: 2, Role: model.RoleSemiAdmin}
	employee := model.User{ID: 3, Role: model.RoleEmployee}

	valid := CreateUserInput{
		Name:     "New Hire",
		Email:    "hire@example.com",
		Password: "secret-password",
	}

	t.Run("admin creates user with hashed password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users, new(MockNotificationRepository))

		users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			// Пароль в открытом виде в БД не попадает
			if u.PasswordHash == valid.Password {
				return false
			}
			err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(valid.Password))
			return err == nil && u.Role == model.RoleEmployee
		})).Return(model.User{ID: 10, Name: "New Hire", Role: model.RoleEmployee}, nil)

		created, err := svc.Create(context.Background(), admin, valid)

		require.NoError(t, err)
		assert.Equal(t, int64(10), created.ID)
		users.AssertExpectations(t)
	})

	t.Run("semi_admin cannot create users", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), new(MockNotificationRepository))

		_, err := svc.Create(context.Background(), semiAdmin, valid)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("employee cannot create users", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), new(MockNotificationRepository))

		_, err := svc.Create(context.Background(), employee, valid)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), new(MockNotificationRepository))

		cases := []struct {
			name string
			in   CreateUserInput
		}{
			{"empty name", CreateUserInput{Name: " ", Email: "a@b.c", Password: "secret-password"}},
			{"bad email", CreateUserInput{Name: "X", Email: "not-an-email", Password: "secret-password"}},
			{"short password", CreateUserInput{Name: "X", Email: "a@b.c", Password: "short"}},
			{"unknown role", CreateUserInput{Name: "X", Email: "a@b.c", Password: "secret-password", Role: "root"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(context.Background(), admin, tc.in)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})
}

func TestUserService_Notifications(t *testing.T) {
	events := new(MockNotificationRepository)
	svc := NewUserService(new(MockUserRepository), events)

	actor := model.User{ID: 5, Role: model.RoleEmployee}
	deliveries := []model.Delivery{{ID: 1, RecipientID: actor.ID, Kind: model.EventTaskCreated}}

	// Лимит за пределами диапазона сбрасывается к значению по умолчанию
	events.On("ListForUser", mock.Anything, actor.ID, 20).Return(deliveries, nil)

	got, err := svc.Notifications(context.Background(), actor, 500)

	require.NoError(t, err)
	assert.Equal(t, deliveries, got)
	events.AssertExpectations(t)
}
