package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/web/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var translations = fstest.MapFS{
	"translation/translate.en.toml": {Data: []byte(`
[menu]
"parties" = "Parties"

[party.status]
"done" = "Done"

[greeting]
"hello" = "Hello {{.Name}}"
`)},
	"translation/translate.ar.toml": {Data: []byte(`
[menu]
"parties" = "الحفلات"

[party.status]
"done" = "منتهية"
`)},
}

func setup(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, InitLocalizer(translations, "ar"))
}

func TestI18n(t *testing.T) {
	setup(t)

	assert.Equal(t, "Parties", I18n("en", "menu.parties"))
	assert.Equal(t, "الحفلات", I18n("ar", "menu.parties"))
	assert.Equal(t, "Done", I18n("en", "party.status.done"))
	assert.Equal(t, "Hello Sara", I18n("en", "greeting.hello", "Name==Sara"))
}

func TestI18nFallbacks(t *testing.T) {
	setup(t)

	// unsupported language falls back to the default
	assert.Equal(t, "الحفلات", I18n("fr", "menu.parties"))
	// unknown keys come back unchanged
	assert.Equal(t, "missing.key", I18n("en", "missing.key"))
}

func TestDir(t *testing.T) {
	assert.Equal(t, "rtl", Dir("ar"))
	assert.Equal(t, "ltr", Dir("en"))
	assert.Equal(t, "ltr", Dir(""))
}

func TestLocalizerMiddleware(t *testing.T) {
	setup(t)

	cases := []struct {
		lang string
		want string
	}{
		{"en", "Parties"},
		{"ar", "الحفلات"},
		{"", "الحفلات"},
		{"de", "الحفلات"},
	}
	for _, tc := range cases {
		t.Run(tc.lang, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				session.WithSnapshot(c, session.Snapshot{Language: tc.lang})
				c.Next()
			}, LocalizerMiddleware())
			r.GET("/", func(c *gin.Context) {
				c.String(http.StatusOK, T(c, "menu.parties"))
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tc.want, w.Body.String())
		})
	}
}

func TestCreateTemplateData(t *testing.T) {
	data := createTemplateData([]string{"a==1", "b==x==y", "broken"})
	assert.Equal(t, map[string]any{"a": "1", "b": "x==y"}, data)

	data = createTemplateData([]string{"k:v"}, ":")
	assert.Equal(t, map[string]any{"k": "v"}, data)
}
