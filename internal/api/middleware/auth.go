package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	roleAdmin = "admin"
)

type contextKey int

const (
	userIDKey contextKey = iota
	adminKey
	requestIDKey
)

// Auth извлекает пользователя из заголовков, выставленных API-шлюзом
// Без корректного X-User-ID запрос отклоняется с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
			return
		}

		isAdmin := strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderUserRole)), roleAdmin)

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, adminKey, isAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// IsAdmin true, если запрос пришел с ролью администратора
func IsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(adminKey).(bool)
	return isAdmin
}

// WithUser кладет пользователя в контекст так же, как Auth
func WithUser(ctx context.Context, userID int64, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, adminKey, isAdmin)
}
