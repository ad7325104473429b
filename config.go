package valdix

import "github.com/denisetiya/Valdix/i18n"

// ErrorMap rewrites the message for an issue before it is appended. Returning
// "" defers to the next resolver in the precedence chain (parse-level map,
// then the global map, then the locale catalogs).
type ErrorMap func(iss Issue) string

// Config is the process-scoped configuration read by every parse context at
// construction. Writes are not synchronized: configure at startup, before
// concurrent parsing begins. This is a documented constraint, not a gap.
type Config struct {
	// Locale selects the default message catalog ("en" when empty).
	Locale string
	// AbortEarly stops each parse at the first issue by default.
	AbortEarly bool
	// ErrorMap is the process-wide message override, consulted after any
	// parse-level map and before the locale catalogs.
	ErrorMap ErrorMap
}

var globalConfig = Config{Locale: "en"}

// Configure replaces the process-wide defaults.
func Configure(c Config) {
	if c.Locale == "" {
		c.Locale = "en"
	}
	globalConfig = c
}

// DefaultConfig returns the current process-wide defaults.
func DefaultConfig() Config { return globalConfig }

// SetLocale switches the default locale; unregistered locales fall back to
// the English catalog at message-resolution time.
func SetLocale(locale string) {
	if locale == "" {
		locale = "en"
	}
	globalConfig.Locale = locale
}

// RegisterLocale installs a message catalog under the given name. Entries may
// be literal strings or i18n.Template functions.
func RegisterLocale(locale string, catalog i18n.Catalog) {
	i18n.Register(locale, catalog)
}
