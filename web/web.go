// Package web assembles the party panel server: templates and assets,
// sessions, the route guards, the controllers and the background jobs.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"github.com/partyhub/party-panel/config"
	"github.com/partyhub/party-panel/database"
	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/remote"
	"github.com/partyhub/party-panel/util/common"
	"github.com/partyhub/party-panel/web/cache"
	"github.com/partyhub/party-panel/web/controller"
	"github.com/partyhub/party-panel/web/job"
	"github.com/partyhub/party-panel/web/locale"
	"github.com/partyhub/party-panel/web/middleware"
	"github.com/partyhub/party-panel/web/network"
	"github.com/partyhub/party-panel/web/service"
	"github.com/partyhub/party-panel/web/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

var startTime = time.Now()

type wrapAssetsFS struct {
	embed.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{File: file}, nil
}

type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{FileInfo: info}, nil
}

type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

// Server is the panel web server with its controllers and scheduled jobs.
type Server struct {
	cfg *config.Config
	api *remote.Client

	httpServer *http.Server
	listener   net.Listener

	sessions *session.Manager
	index    *controller.IndexController
	panel    *controller.PanelController
	health   *job.CheckRemoteJob
	attempts middleware.Limiter

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer(cfg *config.Config) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	api := remote.NewClient(cfg.APIURL, cfg.APITimeout)
	return &Server{
		cfg:    cfg,
		api:    api,
		health: job.NewCheckRemoteJob(api, cfg.APITimeout),
		ctx:    ctx,
		cancel: cancel,
	}
}

// getHtmlFiles walks the local `web/html` directory and returns a list of
// template file paths. Used only in debug/development mode.
func (s *Server) getHtmlFiles() ([]string, error) {
	files := make([]string, 0)
	dir, _ := os.Getwd()
	err := fs.WalkDir(os.DirFS(dir), "web/html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// getHtmlTemplate parses embedded HTML templates from the bundled `htmlFS`.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			newT, err := t.ParseFS(htmlFS, path+"/*.html")
			if err != nil {
				// ignore folders without matches
				return nil
			}
			t = newT
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"i18n": func(lang, key string, params ...string) string {
			return locale.I18n(lang, key, params...)
		},
		"join": strings.Join,
		"add":  func(a, b int) int { return a + b },
		"hasInt": func(list []int, v int) bool {
			for _, x := range list {
				if x == v {
					return true
				}
			}
			return false
		},
		// dict builds the data of a nested template call.
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, errors.New("dict needs key/value pairs")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
	}
}

// sessionSecret returns the configured secret or a random one. A random
// secret does not survive a restart, and neither do the sessions signed
// with it.
func (s *Server) sessionSecret() ([]byte, error) {
	if s.cfg.SessionSecret != "" {
		return []byte(s.cfg.SessionSecret), nil
	}
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return nil, common.NewError("unable to generate a session secret")
	}
	logger.Warning("PARTY_SESSION_SECRET is not set, sessions will not survive a restart")
	return key, nil
}

// sessionStore opens the configured session backend.
func (s *Server) sessionStore() (sessions.Store, error) {
	secret, err := s.sessionSecret()
	if err != nil {
		return nil, err
	}

	var store sessions.Store
	switch s.cfg.SessionStore {
	case config.SessionStoreCookie:
		store = session.NewCookieStore(secret)
	case config.SessionStoreRedis:
		client, err := cache.InitRedis(s.ctx, s.cfg.Redis)
		if err != nil {
			return nil, err
		}
		store = session.NewRedisStore(client, secret)
		s.attempts = middleware.NewRedisLimiter(client)
	default:
		if err := database.InitDB(&s.cfg.Database); err != nil {
			return nil, err
		}
		store = session.NewDBStore(database.GetDB(), secret)
	}

	store.Options(sessions.Options{
		Path:     s.cfg.BasePath,
		MaxAge:   s.cfg.SessionMaxAge * 60,
		Secure:   s.cfg.IsTLS(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// initRouter initializes Gin, registers middleware, templates, static assets,
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if s.cfg.Domain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(s.cfg.Domain))
	}

	basePath := s.cfg.BasePath
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
	})

	// gzip, excluding API path to avoid double-compressing JSON where needed
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{basePath + "panel/api/", basePath + "metrics"}),
	))

	engine.Use(middleware.Metrics())

	funcMap := templateFuncs()
	engine.SetFuncMap(funcMap)

	// Static files & templates. Assets and /metrics are registered ahead of
	// the session middleware so they never rehydrate a session.
	if config.IsDebug() {
		files, err := s.getHtmlFiles()
		if err != nil {
			return nil, err
		}
		engine.LoadHTMLFiles(files...)
		engine.StaticFS(basePath+"assets", http.FS(os.DirFS("web/assets")))
	} else {
		tpl, err := s.getHtmlTemplate(funcMap)
		if err != nil {
			return nil, err
		}
		engine.SetHTMLTemplate(tpl)
		engine.StaticFS(basePath+"assets", http.FS(&wrapAssetsFS{FS: assetsFS}))
	}

	if s.cfg.MetricsKey != "" {
		engine.GET(basePath+"metrics", middleware.APIKeyAuth(s.cfg.MetricsKey), gin.WrapH(promhttp.Handler()))
	}

	store, err := s.sessionStore()
	if err != nil {
		return nil, err
	}
	s.sessions = session.NewManager(s.api, session.Options{
		BasePath:        basePath,
		MaxAge:          s.cfg.SessionMaxAgeDuration(),
		Secure:          s.cfg.IsTLS(),
		DefaultLanguage: s.cfg.DefaultLanguage,
	})
	engine.Use(sessions.Sessions(session.Name, store))
	engine.Use(s.sessions.Load())
	engine.Use(locale.LocalizerMiddleware())

	engine.Use(middleware.RedirectMiddleware(basePath))

	g := engine.Group(basePath)
	if s.attempts == nil {
		s.attempts = middleware.NewMemoryLimiter()
	}
	loginLimit := middleware.RateLimit(s.attempts, middleware.RateLimitConfig{
		Requests: s.cfg.LoginRateLimit,
		Window:   time.Minute,
	})
	s.index = controller.NewIndexController(g, s.sessions, loginLimit)
	s.panel = controller.NewPanelController(g, controller.Services{
		Parties:   service.NewPartyService(s.api),
		Actors:    service.NewActorService(s.api),
		Dashboard: service.NewDashboardService(s.api),
		PageSize:  s.cfg.PageSize,
	})

	// Unknown pages land on the dashboard; its guard takes it from there.
	engine.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, basePath+"assets/") {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, basePath+middleware.LandingRoute)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	runtime := s.cfg.HealthCron
	if _, err := s.cron.AddJob(runtime, s.health); err != nil {
		logger.Warningf("Add CheckRemoteJob error[%s], Runtime[%s] invalid, will run default", err, runtime)
		s.cron.AddJob("@every 1m", s.health)
	}
	go s.health.Run()

	if s.cfg.SessionStore == config.SessionStoreDatabase {
		s.cron.AddJob("@hourly", job.NewPurgeSessionsJob(database.GetDB()))
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	if err := locale.InitLocalizer(i18nFS, s.cfg.DefaultLanguage); err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(s.cfg.Listen, strconv.Itoa(s.cfg.Port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if s.cfg.IsTLS() {
		if cert, err := tls.LoadX509KeyPair(s.cfg.CertFile, s.cfg.KeyFile); err == nil {
			c := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = network.NewAutoHttpsListener(listener)
			listener = tls.NewListener(listener, c)
			logger.Info("Web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("Error loading certificates:", err)
			logger.Info("Web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()
	return nil
}

// Stop gracefully shuts down the web server, the cron jobs and the session
// backend.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var errs []error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, s.httpServer.Shutdown(ctx))
	}
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, err)
		}
	}
	switch s.cfg.SessionStore {
	case config.SessionStoreRedis:
		errs = append(errs, cache.Close())
	case config.SessionStoreDatabase:
		errs = append(errs, database.CloseDB())
	}
	return common.Combine(errs...)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
