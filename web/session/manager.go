package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/config"
	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/remote"
)

// AuthAPI is the part of the party API the session needs.
type AuthAPI interface {
	Login(ctx context.Context, cred model.Credentials) (*model.TokenPair, error)
	Register(ctx context.Context, reg model.Registration) error
	Me(ctx context.Context, token string) (*model.User, error)
}

// Options configures the session cookie.
type Options struct {
	BasePath        string
	MaxAge          time.Duration
	Secure          bool
	DefaultLanguage string
}

// Manager performs the session mutations: login, register, logout and
// language changes. Each mutation is saved before it returns and installs the
// resulting snapshot on the request.
type Manager struct {
	api  AuthAPI
	opts Options
}

func NewManager(api AuthAPI, opts Options) *Manager {
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 24 * time.Hour
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = config.DefaultLanguage
	}
	return &Manager{api: api, opts: opts}
}

func (m *Manager) cookieOptions(maxAge int) sessions.Options {
	return sessions.Options{
		Path:     m.opts.BasePath,
		MaxAge:   maxAge,
		Secure:   m.opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) maxAgeSeconds() int {
	return int(m.opts.MaxAge / time.Second)
}

func (m *Manager) language(s sessions.Session) string {
	if lang, ok := s.Get(keyLanguage).(string); ok && config.IsSupportedLanguage(lang) {
		return lang
	}
	return m.opts.DefaultLanguage
}

// Load derives the request snapshot. When an access token is stored the user
// is fetched from /auth/me/; any failure there ends the session.
func (m *Manager) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		snap := Snapshot{Language: m.language(s)}

		access, _ := s.Get(keyAccessToken).(string)
		if access == "" {
			setCurrent(c, snap)
			c.Next()
			return
		}

		user, err := m.api.Me(c.Request.Context(), access)
		if err != nil {
			if remote.IsUnauthorized(err) {
				logger.Info("session: token rejected, logging out")
			} else {
				logger.Warningf("session: user fetch failed, logging out: %v", err)
			}
			if err := m.clear(s); err != nil {
				logger.Warning("session: unable to clear session:", err)
			}
			setCurrent(c, snap)
			c.Next()
			return
		}

		refresh, _ := s.Get(keyRefreshToken).(string)
		snap.User = user
		snap.AccessToken = access
		snap.RefreshToken = refresh
		snap.Authenticated = true
		setCurrent(c, snap)
		c.Next()
	}
}

// Login exchanges the credentials for a token pair, fetches the user with it
// and persists the pair. A failed user fetch leaves the session logged out.
func (m *Manager) Login(c *gin.Context, cred model.Credentials) (Snapshot, error) {
	ctx := c.Request.Context()
	pair, err := m.api.Login(ctx, cred)
	if err != nil {
		return Current(c), err
	}

	s := sessions.Default(c)
	user, err := m.api.Me(ctx, pair.Access)
	if err != nil {
		if clearErr := m.clear(s); clearErr != nil {
			logger.Warning("session: unable to clear session:", clearErr)
		}
		snap := Snapshot{Language: m.language(s)}
		setCurrent(c, snap)
		return snap, err
	}

	s.Set(keyAccessToken, pair.Access)
	s.Set(keyRefreshToken, pair.Refresh)
	s.Options(m.cookieOptions(cookieMaxAge(pair.Refresh, time.Now(), m.maxAgeSeconds())))
	if err := s.Save(); err != nil {
		return Current(c), fmt.Errorf("save session: %w", err)
	}

	snap := Snapshot{
		User:          user,
		AccessToken:   pair.Access,
		RefreshToken:  pair.Refresh,
		Authenticated: true,
		Language:      m.language(s),
	}
	setCurrent(c, snap)
	return snap, nil
}

// Register creates the account and then logs in with the same username and
// password.
func (m *Manager) Register(c *gin.Context, reg model.Registration) (Snapshot, error) {
	if err := m.api.Register(c.Request.Context(), reg); err != nil {
		return Current(c), err
	}
	return m.Login(c, model.Credentials{Username: reg.Username, Password: reg.Password})
}

// Logout drops both tokens. The language preference stays.
func (m *Manager) Logout(c *gin.Context) (Snapshot, error) {
	s := sessions.Default(c)
	snap := Snapshot{Language: m.language(s)}
	err := m.clear(s)
	setCurrent(c, snap)
	return snap, err
}

func (m *Manager) clear(s sessions.Session) error {
	s.Delete(keyAccessToken)
	s.Delete(keyRefreshToken)
	s.Options(m.cookieOptions(m.maxAgeSeconds()))
	return s.Save()
}

// SetLanguage stores the UI language for the session.
func (m *Manager) SetLanguage(c *gin.Context, lang string) (Snapshot, error) {
	if !config.IsSupportedLanguage(lang) {
		return Current(c), fmt.Errorf("unsupported language %q", lang)
	}
	s := sessions.Default(c)
	s.Set(keyLanguage, lang)
	if err := s.Save(); err != nil {
		return Current(c), fmt.Errorf("save session: %w", err)
	}
	snap := Current(c)
	snap.Language = lang
	setCurrent(c, snap)
	return snap, nil
}
