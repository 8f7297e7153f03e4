package i18n

// Language is a supported interface language.
type Language string

const (
	LangFR Language = "fr"
	LangAR Language = "ar"
)

const DefaultLang = LangFR

type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Parse maps arbitrary client input onto a supported language, falling back
// to the default rather than erroring: a bad locale header should never
// break a request.
func Parse(s string) Language {
	switch Language(s) {
	case LangFR, LangAR:
		return Language(s)
	}
	return DefaultLang
}

// IsValid reports whether s names a supported language exactly. Used where
// the caller asked to persist a choice and deserves an error for a typo.
func IsValid(s string) bool {
	return Language(s) == LangFR || Language(s) == LangAR
}

func (l Language) Direction() Direction {
	if l == LangAR {
		return DirectionRTL
	}
	return DirectionLTR
}

// T looks a key up in the language's catalog. Missing keys return the key
// itself: gaps stay visible in the UI instead of crashing a request.
func T(lang Language, key string) string {
	catalog := catalogFR
	if lang == LangAR {
		catalog = catalogAR
	}
	if msg, ok := catalog[key]; ok {
		return msg
	}
	return key
}
