package models

import (
	"fmt"
	"time"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Preference holds a user's display choices. Language values live in the
// i18n package; this row just persists the scalar.
type Preference struct {
	UserID    string
	Language  string
	Theme     Theme
	UpdatedAt time.Time
}
