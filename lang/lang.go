// Package lang defines the closed two-language code zhenbot translates
// between, plus display metadata (native name and emoji flag) used in
// user-facing messages.
package lang

import (
	"fmt"
	"strings"
)

// Code is a two-letter language code. The enumeration is closed: exactly
// two values are valid, and every consumer assumes there is no third.
type Code string

const (
	// En is English.
	En Code = "en"
	// Zh is Chinese (Mandarin).
	Zh Code = "zh"
)

// Parse converts a two-letter code, case-insensitively. Any string other
// than "en" or "zh" (in any case) is rejected.
func Parse(s string) (Code, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en":
		return En, nil
	case "zh":
		return Zh, nil
	}
	return "", fmt.Errorf("unsupported language code %q (expected en or zh)", s)
}

// String renders the code in its canonical lowercase form.
func (c Code) String() string { return string(c) }

// Upper renders the code in uppercase, as used in result headers.
func (c Code) Upper() string { return strings.ToUpper(string(c)) }

// UnmarshalText implements encoding.TextUnmarshaler so Code can be decoded
// directly from environment variables and config files.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler (lowercase form).
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ---------------------------------------------------------------------------
// Display metadata
// ---------------------------------------------------------------------------

// Meta describes language display metadata.
type Meta struct {
	Name string
	Flag string
}

// registry contains canonical display metadata for the supported codes.
var registry = map[Code]Meta{
	En: {Name: "English", Flag: "🇺🇸"},
	Zh: {Name: "中文", Flag: "🇨🇳"},
}

// Display returns display metadata for c. Unknown codes (which should not
// exist past Parse) get a bare fallback built from the code itself.
func Display(c Code) Meta {
	if m, ok := registry[c]; ok {
		return m
	}
	return Meta{Name: c.String()}
}
