package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Identity аутентифицированный пользователь запроса
type Identity struct {
	UserID  string
	Email   string
	Name    string
	IsAdmin bool
}

// Claims полезная нагрузка JWT токена
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Bearer токен и кладет Identity в контекст запроса
type Auth struct {
	secret  []byte
	isAdmin func(email string) bool
	logger  Logger
}

// NewAuth создает middleware аутентификации.
// isAdmin определяет административную роль по email пользователя.
func NewAuth(secret string, isAdmin func(email string) bool, logger Logger) *Auth {
	return &Auth{
		secret:  []byte(secret),
		isAdmin: isAdmin,
		logger:  logger,
	}
}

// Middleware возвращает mux.MiddlewareFunc совместимую обертку
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			a.logger.Warn("%s %s - Missing Authorization header", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		rawToken, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			a.logger.Warn("%s %s - Malformed Authorization header", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
			return a.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			a.logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		if claims.Subject == "" {
			a.logger.Warn("%s %s - Token without subject", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		identity := Identity{
			UserID:  claims.Subject,
			Email:   claims.Email,
			Name:    claims.Name,
			IsAdmin: a.isAdmin(claims.Email),
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity извлекает Identity из контекста запроса
func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

// GetUserID извлекает идентификатор пользователя из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	identity, ok := GetIdentity(ctx)
	if !ok {
		return "", false
	}
	return identity.UserID, true
}
