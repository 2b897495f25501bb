package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is the closed set of UI languages.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// Default is used whenever no supported language can be determined.
const Default = English

var supported = []Language{English, Arabic}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

func (l Language) Valid() bool {
	return l == English || l == Arabic
}

// Direction is the text direction clients should render with.
func (l Language) Direction() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// Parse accepts a stored or user supplied language code such as "ar" or "en-GB".
func Parse(s string) (Language, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Default, false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Default, false
	}
	base, _ := tag.Base()
	l := Language(base.String())
	if !l.Valid() {
		return Default, false
	}
	return l, true
}

// FromAcceptLanguage picks the best supported language for an Accept-Language header.
func FromAcceptLanguage(header string) Language {
	if strings.TrimSpace(header) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}
