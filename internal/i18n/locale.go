package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported UI language.
type Locale string

const (
	English Locale = "en"
	French  Locale = "fr"
	Arabic  Locale = "ar"
)

// ContextKey is the gin context key holding the request Locale.
const ContextKey = "locale"

// Locales lists the supported locales, default first.
var Locales = []Locale{English, French, Arabic}

var catalog = map[Locale]map[Key]string{
	English: english,
	French:  french,
	Arabic:  arabic,
}

// matcher order must follow Locales so Match indexes line up.
var matcher = language.NewMatcher([]language.Tag{language.English, language.French, language.Arabic})

// ParseLocale accepts "fr", "FR", "fr-MA" or "fr_MA".
func ParseLocale(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	l := Locale(s)
	_, ok := catalog[l]
	return l, ok
}

// Negotiate picks the best supported locale for an Accept-Language header.
func Negotiate(acceptLanguage string) (Locale, bool) {
	if strings.TrimSpace(acceptLanguage) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return Locales[idx], true
}

// Resolve applies the negotiation order: explicit query value, X-Locale
// header, Accept-Language, then def.
func Resolve(query, header, acceptLanguage string, def Locale) Locale {
	if l, ok := ParseLocale(query); ok {
		return l
	}
	if l, ok := ParseLocale(header); ok {
		return l
	}
	if l, ok := Negotiate(acceptLanguage); ok {
		return l
	}
	if _, ok := catalog[def]; ok {
		return def
	}
	return English
}

// T returns the string for k in loc, falling back to English and then to the key name.
func T(loc Locale, k Key) string {
	if s, ok := catalog[loc][k]; ok {
		return s
	}
	if s, ok := english[k]; ok {
		return s
	}
	return string(k)
}

// Dictionary returns the flat key/value table for loc with English filling gaps.
func Dictionary(loc Locale) (map[string]string, bool) {
	if _, ok := catalog[loc]; !ok {
		return nil, false
	}
	out := make(map[string]string, len(Keys))
	for _, k := range Keys {
		out[string(k)] = T(loc, k)
	}
	return out, true
}
