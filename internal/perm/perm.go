// Package perm решает, что пользователю можно делать с задачей.
// Чистые функции от (пользователь, задача, набор соавторов) — без I/O.
// Роль admin проверяется первой и обходит все остальные правила.
package perm

import "github.com/BuzzLyutic/collabtask-api/internal/model"

func CanView(u model.User, t model.Task, links []model.Collaborator) bool {
	if u.IsAdmin() {
		return true
	}
	if t.OwnerID == u.ID {
		return true
	}
	return permissionOf(u.ID, links) != ""
}

func CanEdit(u model.User, t model.Task, links []model.Collaborator) bool {
	if u.IsAdmin() {
		return true
	}
	if t.OwnerID == u.ID {
		return true
	}
	return permissionOf(u.ID, links) == model.PermissionEdit
}

func CanComment(u model.User, t model.Task, links []model.Collaborator) bool {
	if u.IsAdmin() {
		return true
	}
	if t.OwnerID == u.ID {
		return true
	}
	switch permissionOf(u.ID, links) {
	case model.PermissionEdit, model.PermissionComment:
		return true
	}
	return false
}

// CanDelete — только владелец. Соавторы с правом edit удалять не могут
func CanDelete(u model.User, t model.Task) bool {
	if u.IsAdmin() {
		return true
	}
	return t.OwnerID == u.ID
}

// CanCreate — любой аутентифицированный пользователь
func CanCreate(u model.User) bool {
	return u.ID != 0
}

// permissionOf возвращает уровень доступа пользователя или пустую строку,
// если строки связи нет
func permissionOf(userID int64, links []model.Collaborator) string {
	for _, l := range links {
		if l.UserID == userID {
			return l.Permission
		}
	}
	return ""
}
