package handler

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
	"github.com/BuzzLyutic/collabtask-api/internal/repo"
	"github.com/BuzzLyutic/collabtask-api/pkg/respond"
)

type ctxKey int

const userKey ctxKey = iota

// Authenticate разрешает доверенный заголовок X-User-ID в пользователя
// на контексте запроса. Выпуск и проверка токенов живут во внешнем
// слое аутентификации, сюда приходит уже проверенный идентификатор
func Authenticate(users repo.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
			if err != nil || id == 0 {
				respond.Error(w, r, http.StatusUnauthorized, "unauthenticated")
				return
			}

			u, err := users.Get(r.Context(), id)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "unauthenticated")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser достает пользователя, положенного Authenticate
func CurrentUser(r *http.Request) model.User {
	u, _ := r.Context().Value(userKey).(model.User)
	return u
}
