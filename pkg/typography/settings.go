// Package typography holds the heading and body font selection of a
// customizer session and computes the styles of the preview elements.
package typography

import (
	"errors"
	"fmt"
)

// Role is an independently configurable typography target.
type Role string

const (
	Heading Role = "heading"
	Body    Role = "body"
)

// Roles lists every role.
var Roles = []Role{Heading, Body}

var (
	// ErrUnknownRole is returned for roles other than heading and body.
	ErrUnknownRole = errors.New("unknown typography role")
	// ErrInvalidScale is returned for non-positive size scales.
	ErrInvalidScale = errors.New("size scale must be positive")
	// ErrOutOfRange is returned for line heights and letter spacings outside
	// their slider range.
	ErrOutOfRange = errors.New("value out of range")
)

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case Heading, Body:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Settings is the typography of one role.
type Settings struct {
	Family        string  `json:"family"`
	Weight        int     `json:"weight"`
	SizeScale     float64 `json:"sizeScale"`
	LineHeight    float64 `json:"lineHeight"`
	LetterSpacing float64 `json:"letterSpacing"`
}

// Defaults returns the built-in settings of a role.
func Defaults(role Role) Settings {
	if role == Heading {
		return Settings{Family: "Inter", Weight: 700, SizeScale: 1, LineHeight: 1.2}
	}
	return Settings{Family: "Open Sans", Weight: 400, SizeScale: 1, LineHeight: 1.5}
}

// Keys are the storage keys of one role's settings.
type Keys struct {
	Family        string
	Weight        string
	SizeScale     string
	LineHeight    string
	LetterSpacing string
}

// KeysFor returns the storage keys of a role.
func KeysFor(role Role) Keys {
	if role == Heading {
		return Keys{
			Family:        "selectedHeadingFont",
			Weight:        "headingFontWeight",
			SizeScale:     "headingSizeScale",
			LineHeight:    "headingLineHeight",
			LetterSpacing: "headingLetterSpacing",
		}
	}
	return Keys{
		Family:        "selectedBodyFont",
		Weight:        "bodyFontWeight",
		SizeScale:     "bodySizeScale",
		LineHeight:    "bodyLineHeight",
		LetterSpacing: "bodyLetterSpacing",
	}
}

// All returns the keys in storage order.
func (k Keys) All() []string {
	return []string{k.Family, k.Weight, k.SizeScale, k.LineHeight, k.LetterSpacing}
}
