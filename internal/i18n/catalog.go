package i18n

import "fmt"

// Key names one translatable string.
type Key string

// Catalog is the resolved resource record for one language.
type Catalog struct {
	Language  Language
	Direction string
	text      map[Key]string
}

// Text returns the string for key, falling back to English and then to the key itself.
func (c Catalog) Text(key Key) string {
	if v, ok := c.text[key]; ok {
		return v
	}
	if v, ok := resources[English][key]; ok {
		return v
	}
	return string(key)
}

func (c Catalog) Textf(key Key, args ...interface{}) string {
	return fmt.Sprintf(c.Text(key), args...)
}

// Lookup is the single entry point for language resources.
func Lookup(l Language) Catalog {
	if !l.Valid() {
		l = Default
	}
	return Catalog{Language: l, Direction: l.Direction(), text: resources[l]}
}

func T(l Language, key Key) string {
	return Lookup(l).Text(key)
}

func Tf(l Language, key Key, args ...interface{}) string {
	return Lookup(l).Textf(key, args...)
}
