package prefs

import "strings"

// Language is one of the app's supported locales.
type Language string

const (
	LanguageES Language = "es"
	LanguageEN Language = "en"
	LanguageZH Language = "zh"
	LanguageFR Language = "fr"
)

// Languages lists the supported locales in enumeration order; the first one
// is the default.
var Languages = []Language{LanguageES, LanguageEN, LanguageZH, LanguageFR}

// DefaultLanguage is applied when nothing is persisted or the stored value
// is unreadable.
const DefaultLanguage = LanguageES

// ParseLanguage normalizes and validates a locale tag.
func ParseLanguage(s string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Languages {
		if lang == known {
			return known, true
		}
	}
	return "", false
}

// Theme is the app-wide color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const DefaultTheme = ThemeLight

// ParseTheme normalizes and validates a theme name.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}
