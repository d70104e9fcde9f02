package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKeyHasEnglish(t *testing.T) {
	for _, k := range Keys {
		_, ok := english[k]
		assert.True(t, ok, "missing english for %s", k)
	}
	assert.Len(t, english, len(Keys))
}

func TestTFallback(t *testing.T) {
	assert.Equal(t, "Jours", T(French, CommonDays))
	assert.Equal(t, "أيام", T(Arabic, CommonDays))

	assert.Equal(t, "Days", T(Locale("de"), CommonDays))
	assert.Equal(t, "errors.unknown", T(French, Key("errors.unknown")))
}

func TestParseLocale(t *testing.T) {
	cases := map[string]struct {
		want Locale
		ok   bool
	}{
		"fr":    {French, true},
		"AR":    {Arabic, true},
		"fr-MA": {French, true},
		"en_GB": {English, true},
		"de":    {Locale("de"), false},
		"":      {Locale(""), false},
	}
	for in, tc := range cases {
		got, ok := ParseLocale(in)
		assert.Equal(t, tc.ok, ok, in)
		if tc.ok {
			assert.Equal(t, tc.want, got, in)
		}
	}
}

func TestResolveOrder(t *testing.T) {
	assert.Equal(t, Arabic, Resolve("ar", "fr", "en", English))
	assert.Equal(t, French, Resolve("", "fr", "ar", English))
	assert.Equal(t, French, Resolve("xx", "", "fr-FR,fr;q=0.9,en;q=0.5", English))
	assert.Equal(t, Arabic, Resolve("", "", "ar-MA", English))
	assert.Equal(t, French, Resolve("", "", "", French))
	assert.Equal(t, English, Resolve("", "", "", Locale("de")))
}

func TestNegotiateRejectsUnsupported(t *testing.T) {
	_, ok := Negotiate("ja-JP")
	assert.False(t, ok)
	_, ok = Negotiate("")
	assert.False(t, ok)
}

func TestDictionary(t *testing.T) {
	d, ok := Dictionary(French)
	require.True(t, ok)
	assert.Len(t, d, len(Keys))
	assert.Equal(t, "Plus récent", d["common.newest"])

	_, ok = Dictionary(Locale("es"))
	assert.False(t, ok)
}
