// Package i18n provides internationalization for zhenbot's own
// user-facing strings (the help blurb, error prefixes, /start text).
//
// It wraps the gotext library behind a simple T() function. Translations
// are embedded in the binary via //go:embed and loaded at startup via
// Init(). Embedded catalogs are keyed by bare language code, so any
// locale value is normalized down to its base language before lookup
// ("zh_CN.UTF-8" and "zh-TW" both select the zh catalog).
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the translation files.
// Directory structure: locales/{lang}/LC_MESSAGES/zhenbot.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for zhenbot.
const domain = "zhenbot"

// po is the gotext locale object used for translations.
var po *gotext.Locale

// Init initializes the i18n system with the configured locale (typically
// BOT_LOCALE). An empty locale falls back to the process environment, and
// failing that to English.
//
// Init should be called once at program startup, before any T() calls.
func Init(locale string) {
	code := normalize(locale)
	if code == "" {
		code = detectLocale()
	}

	po = gotext.NewLocaleFSWithPath(code, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates a string. If no translation is available, returns the
// original string unchanged (standard gettext passthrough behavior).
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// detectLocale picks a language from the usual locale variables, checked
// in GNU gettext priority order.
func detectLocale() string {
	for _, key := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if code := normalize(os.Getenv(key)); code != "" {
			return code
		}
	}
	return "en"
}

// normalize reduces a raw locale value to a bare language code:
// "zh_CN.UTF-8:en_US" -> "zh", "zh-TW" -> "zh", "en" -> "en". The "C" and
// "POSIX" locales mean no translation and normalize to nothing.
func normalize(value string) string {
	value, _, _ = strings.Cut(value, ":") // LANGUAGE can be a list
	value, _, _ = strings.Cut(value, ".") // drop encoding suffix
	value, _, _ = strings.Cut(value, "_") // drop territory
	value, _, _ = strings.Cut(value, "-")
	if value == "C" || value == "POSIX" {
		return ""
	}
	return value
}
