// Package middleware содержит HTTP middleware: идентичность вызывающего
// и метрики запросов.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Заголовки, проставляемые внешним auth-слоем
const (
	HeaderUserID    = "X-User-ID"
	HeaderCompanyID = "X-Company-ID"
	HeaderRole      = "X-Role"
)

// Identity данные вызывающего из заголовков запроса
type Identity struct {
	UserID    int64
	CompanyID int64
	Role      domain.Role
}

type identityKey struct{}

// WithIdentity извлекает идентичность вызывающего из заголовков и кладет её
// в контекст запроса. Механика аутентификации живёт снаружи, сервис доверяет
// заголовкам.
func WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := Identity{Role: domain.RoleClient}

		if v := r.Header.Get(HeaderUserID); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				identity.UserID = id
			}
		}

		if v := r.Header.Get(HeaderCompanyID); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				identity.CompanyID = id
			}
		}

		if v := r.Header.Get(HeaderRole); v != "" {
			switch domain.Role(v) {
			case domain.RoleAdmin, domain.RoleEmployee, domain.RoleClient:
				identity.Role = domain.Role(v)
			}
		}

		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext возвращает идентичность вызывающего из контекста
func IdentityFromContext(ctx context.Context) Identity {
	if identity, ok := ctx.Value(identityKey{}).(Identity); ok {
		return identity
	}
	return Identity{Role: domain.RoleClient}
}
