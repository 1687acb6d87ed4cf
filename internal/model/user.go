package model

import "time"

const (
	RoleAdmin     = "admin"
	RoleSemiAdmin = "semi_admin"
	RoleEmployee  = "employee"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	PhotoPath    *string   `json:"photo_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin — строго роль admin: обход проверок доступа и рассылка уведомлений
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasAdminPrivileges — admin и semi_admin: доступ к дашборду со статистикой.
// Это НЕ то же самое, что IsAdmin, и объединять их нельзя
func (u User) HasAdminPrivileges() bool {
	return u.Role == RoleAdmin || u.Role == RoleSemiAdmin
}
