package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/config"
	"github.com/partyhub/party-panel/web/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

// fakeRemote answers the endpoints a login followed by a dashboard view
// needs and counts the user fetches.
type fakeRemote struct {
	meCalls atomic.Int64
	meFails atomic.Bool
}

func (f *fakeRemote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/auth/login/":
		_, _ = w.Write([]byte(`{"access":"access","refresh":"refresh"}`))
	case "/api/auth/me/":
		f.meCalls.Inc()
		if f.meFails.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"username":"root"}`))
	case "/api/auth/dashboard/stats/":
		_, _ = w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestServer(t *testing.T, metricsKey string) (*gin.Engine, *fakeRemote) {
	t.Helper()
	remote := &fakeRemote{}
	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)

	require.NoError(t, locale.InitLocalizer(i18nFS, "ar"))

	cfg := &config.Config{
		APIURL:          srv.URL + "/api",
		APITimeout:      2 * time.Second,
		BasePath:        "/",
		SessionSecret:   "0123456789abcdef0123456789abcdef",
		SessionMaxAge:   60,
		SessionStore:    config.SessionStoreCookie,
		DefaultLanguage: "ar",
		PageSize:        10,
		LoginRateLimit:  10,
		MetricsKey:      metricsKey,
	}
	s := NewServer(cfg)
	t.Cleanup(func() { s.cancel() })

	engine, err := s.initRouter()
	require.NoError(t, err)
	return engine, remote
}

func request(engine *gin.Engine, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, engine *gin.Engine) []*http.Cookie {
	t.Helper()
	w := request(engine, http.MethodPost, "/login", url.Values{"username": {"root"}, "password": {"pw"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestAssetsDoNotRehydrateSession(t *testing.T) {
	engine, remote := newTestServer(t, "")
	cookies := login(t, engine)
	before := remote.meCalls.Load()

	for _, path := range []string{"/assets/css/panel.css", "/assets/js/panel.js"} {
		w := request(engine, http.MethodGet, path, nil, cookies)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
	assert.Equal(t, before, remote.meCalls.Load())

	w := request(engine, http.MethodGet, "/dashboard", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before+1, remote.meCalls.Load())
}

func TestFailingUserFetchDuringAssetKeepsSession(t *testing.T) {
	engine, remote := newTestServer(t, "")
	cookies := login(t, engine)

	remote.meFails.Store(true)
	w := request(engine, http.MethodGet, "/assets/css/panel.css", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	if c := w.Result().Cookies(); len(c) > 0 {
		cookies = c
	}
	remote.meFails.Store(false)

	w = request(engine, http.MethodGet, "/dashboard", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestMetricsRequiresKey(t *testing.T) {
	engine, remote := newTestServer(t, "scrape-key")

	w := request(engine, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Api-Key", "scrape-key")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "party_panel_")
	assert.Zero(t, remote.meCalls.Load())
}

func TestMetricsHiddenWithoutKey(t *testing.T) {
	engine, _ := newTestServer(t, "")
	w := request(engine, http.MethodGet, "/metrics", nil, nil)
	assert.NotEqual(t, http.StatusOK, w.Code)
}
