package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LeasingGateway/internal/api/handlers"
	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	sessionService "github.com/m04kA/SMC-LeasingGateway/internal/service/session"
)

// SessionHeader заголовок с ID сессии шлюза
const SessionHeader = "X-Session-ID"

const (
	msgMissingSession = "Требуется авторизация."
	msgForbidden      = "доступ запрещен"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionResolver интерфейс разрешения ID сессии
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Session разрешает X-Session-ID в сессию и кладет ее в контекст запроса
func Session(resolver SessionResolver, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionHeader)
			if sessionID == "" {
				handlers.RespondUnauthorized(w, msgMissingSession)
				return
			}

			sess, err := resolver.Resolve(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, sessionService.ErrSessionNotFound) {
					log.Warn("%s %s - Unknown session", r.Method, r.URL.Path)
					handlers.RespondUnauthorized(w, msgMissingSession)
					return
				}
				log.Error("%s %s - Failed to resolve session: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireAdmin пропускает только сессии с ролью Admin
// Должен стоять после Session
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSession(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingSession)
			return
		}
		if !sess.IsAdmin() {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession кладет сессию в контекст
func WithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// GetSession извлекает сессию из контекста
func GetSession(ctx context.Context) (*domain.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*domain.Session)
	return sess, ok && sess != nil
}
