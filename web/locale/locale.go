// Package locale loads the bundled toml translations and resolves messages
// for the language stored in the request's session.
package locale

import (
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/partyhub/party-panel/config"
	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/web/session"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

var (
	i18nBundle  *i18n.Bundle
	localizers  map[string]*i18n.Localizer
	defaultLang = config.DefaultLanguage
	lazyLoad    sync.Once
)

// InitLocalizer parses every translation file of i18nFS and prepares one
// localizer per supported language. It must run before the server starts.
func InitLocalizer(i18nFS fs.FS, defaultLanguage string) error {
	bundle := i18n.NewBundle(language.MustParse(config.DefaultLanguage))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := parseTranslationFiles(i18nFS, bundle); err != nil {
		return err
	}
	install(bundle, defaultLanguage)
	return nil
}

func install(bundle *i18n.Bundle, defaultLanguage string) {
	i18nBundle = bundle
	if config.IsSupportedLanguage(defaultLanguage) {
		defaultLang = defaultLanguage
	}
	localizers = make(map[string]*i18n.Localizer, len(config.SupportedLanguages))
	for _, lang := range config.SupportedLanguages {
		localizers[lang] = i18n.NewLocalizer(bundle, lang, defaultLang)
	}
}

func createTemplateData(params []string, seperator ...string) map[string]any {
	sep := "=="
	if len(seperator) > 0 {
		sep = seperator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}
	return templateData
}

// I18n translates key into lang. Params are "name==value" pairs for the
// message template. Unknown keys come back unchanged.
func I18n(lang string, key string, params ...string) string {
	localizer, ok := localizers[lang]
	if !ok {
		localizer, ok = localizers[defaultLang]
	}
	if !ok {
		return key
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Debugf("Failed to localize message %q: %v", key, err)
		return key
	}
	return msg
}

// Dir is the text direction of lang.
func Dir(lang string) string {
	if lang == "ar" {
		return "rtl"
	}
	return "ltr"
}

// LocalizerMiddleware binds the session language to the request. It runs
// after session.Load.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lazyLoad.Do(func() {
			if i18nBundle != nil {
				return
			}
			bundle := i18n.NewBundle(language.MustParse(config.DefaultLanguage))
			bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
			if err := loadTranslationsFromDisk(bundle); err != nil {
				logger.Warning("i18n lazy load failed:", err)
			}
			install(bundle, defaultLang)
		})

		lang := session.Current(c).Language
		if !config.IsSupportedLanguage(lang) {
			lang = defaultLang
		}

		c.Set("lang", lang)
		c.Set("I18n", func(key string, params ...string) string {
			return I18n(lang, key, params...)
		})
		c.Next()
	}
}

// T translates key for the request's language.
func T(c *gin.Context, key string, params ...string) string {
	if f, ok := c.Get("I18n"); ok {
		if i18nFunc, ok := f.(func(string, ...string) string); ok {
			return i18nFunc(key, params...)
		}
	}
	return I18n(defaultLang, key, params...)
}

// loadTranslationsFromDisk reads "web/translation" from the working
// directory. Used when the server runs without InitLocalizer, as in tests.
func loadTranslationsFromDisk(bundle *i18n.Bundle) error {
	root := os.DirFS("web")
	return parseTranslationFiles(root, bundle)
}

func parseTranslationFiles(i18nFS fs.FS, bundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(i18nFS, path)
		if err != nil {
			return err
		}
		_, err = bundle.ParseMessageFileBytes(data, path)
		return err
	})
}
