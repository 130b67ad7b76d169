package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"shuul-console/internal/cache"
	"shuul-console/internal/config"
	"shuul-console/internal/expiry"
	"shuul-console/internal/locale"
	"shuul-console/internal/middlewares"
)

// SessionManager holds the backend JWT server side and mirrors its expiry
// with a scheduled task, so a session never outlives its token.
type SessionManager struct {
	*scs.SessionManager

	logger *slog.Logger
	cfg    *config.Config
	tasks  *expiry.Registry

	// onExpire runs when a session's token reaches its expiry or the
	// session is logged out, keyed by the scs session token.
	onExpire func(sessionToken string)
}

func NewSessionManager(logger *slog.Logger, cfg *config.Config, tasks *expiry.Registry, onExpire func(sessionToken string)) (*SessionManager, error) {
	sessionManager := scs.New()

	switch cfg.Sessions.Store {
	case "memory":
		sessionManager.Store = memstore.New()
	case "redis":
		client, err := cache.NewRedisClient(cfg.Redis, cfg.Redis.SessionIndex)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		sessionManager.Store = goredisstore.New(client)
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Sessions.Store)
	}

	sessionManager.Lifetime = cfg.Sessions.Lifetime

	sessionManager.Cookie.Name = cfg.Sessions.Name
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Sessions.Secure
	sessionManager.Cookie.Path = "/"

	if onExpire == nil {
		onExpire = func(string) {}
	}

	return &SessionManager{
		SessionManager: sessionManager,
		logger:         logger,
		cfg:            cfg,
		tasks:          tasks,
		onExpire:       onExpire,
	}, nil
}

func (s *SessionManager) LoadAndSave(next http.Handler) http.Handler {
	return s.SessionManager.LoadAndSave(next)
}

// Login stores the backend token in the session. The session token is
// renewed first so the stored JWT never rides a pre-login session id, and a
// task is armed to destroy the session the moment the token expires.
func (s *SessionManager) Login(ctx *middlewares.AppContext, token string) error {
	claims, err := DecodeToken(token)
	if err != nil {
		return fmt.Errorf("decoding token: %w", err)
	}

	remaining := claims.Remaining(time.Now())
	if remaining <= 0 {
		return fmt.Errorf("token already expired")
	}

	if err := s.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	s.Put(ctx, string(SessionKeyToken), token)

	s.armExpiryTask(s.SessionToken(ctx), remaining)
	return nil
}

// Logout cancels the expiry task and destroys the session.
func (s *SessionManager) Logout(ctx *middlewares.AppContext) error {
	sessionToken := s.SessionToken(ctx)
	if sessionToken != "" {
		s.tasks.Cancel(sessionToken)
		s.onExpire(sessionToken)
	}
	return s.Destroy(ctx.Request.Context())
}

// Token returns the stored backend JWT, or "".
func (s *SessionManager) Token(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(SessionKeyToken))
}

// SessionToken returns the scs session token for this request, or "" for a
// session that has never been committed.
func (s *SessionManager) SessionToken(ctx *middlewares.AppContext) string {
	return s.SessionManager.Token(ctx.Request.Context())
}

// IsLoggedIn recomputes validity from the token claims on every call. The
// expiry task is the eager path; this check is what gates requests.
func (s *SessionManager) IsLoggedIn(ctx *middlewares.AppContext) bool {
	claims, ok := s.claims(ctx)
	return ok && claims.Remaining(time.Now()) > 0
}

func (s *SessionManager) IsAdmin(ctx *middlewares.AppContext) bool {
	claims, ok := s.claims(ctx)
	return ok && claims.IsAdmin()
}

func (s *SessionManager) Role(ctx *middlewares.AppContext) string {
	if claims, ok := s.claims(ctx); ok {
		return claims.Role
	}
	return ""
}

// EnsureExpiryTask re-arms the expiry task for a session restored from the
// store. Sessions whose token has already lapsed are destroyed on the spot.
func (s *SessionManager) EnsureExpiryTask(ctx *middlewares.AppContext) {
	claims, ok := s.claims(ctx)
	if !ok {
		return
	}
	sessionToken := s.SessionToken(ctx)
	if sessionToken == "" || s.tasks.Armed(sessionToken) {
		return
	}

	remaining := claims.Remaining(time.Now())
	if remaining <= 0 {
		if err := s.Logout(ctx); err != nil {
			s.logger.Warn("destroying lapsed session failed", "error", err)
		}
		return
	}
	s.armExpiryTask(sessionToken, remaining)
}

func (s *SessionManager) IsDarkMode(ctx *middlewares.AppContext) bool {
	if !s.Exists(ctx, string(SessionKeyMode)) {
		return true
	}
	return s.GetString(ctx, string(SessionKeyMode)) == "dark"
}

func (s *SessionManager) SetDarkMode(ctx *middlewares.AppContext, dark bool) {
	mode := "light"
	if dark {
		mode = "dark"
	}
	s.Put(ctx, string(SessionKeyMode), mode)
}

func (s *SessionManager) Locale(ctx *middlewares.AppContext) string {
	if l := s.GetString(ctx, string(SessionKeyLocale)); l != "" {
		return l
	}
	return s.cfg.Locale.Default
}

func (s *SessionManager) SetLocale(ctx *middlewares.AppContext, l string) error {
	if !locale.IsSupported(l) {
		return fmt.Errorf("unsupported locale: %s", l)
	}
	s.Put(ctx, string(SessionKeyLocale), l)
	return nil
}

func (s *SessionManager) claims(ctx *middlewares.AppContext) (*Claims, bool) {
	token := s.Token(ctx)
	if token == "" {
		return nil, false
	}
	claims, err := DecodeToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func (s *SessionManager) armExpiryTask(sessionToken string, remaining time.Duration) {
	if sessionToken == "" {
		return
	}
	s.tasks.Arm(sessionToken, remaining, func() {
		if err := s.Store.Delete(sessionToken); err != nil {
			s.logger.Warn("deleting expired session failed", "error", err)
		}
		s.onExpire(sessionToken)
		s.logger.Info("session expired with its token")
	})
}
