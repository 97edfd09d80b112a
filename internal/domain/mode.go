package domain

import "errors"

// Mode selects which form the site root serves.
type Mode string

const (
	ModeSurvey Mode = "survey"
	ModeApply  Mode = "apply"
)

// DefaultMode is reported when no mode has been persisted.
const DefaultMode = ModeSurvey

// ErrInvalidMode is returned when setting a mode outside {survey, apply}.
var ErrInvalidMode = errors.New("invalid mode")

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeSurvey || m == ModeApply
}

// ParseMode maps a persisted value to a Mode, falling back to DefaultMode.
func ParseMode(raw string) Mode {
	m := Mode(raw)
	if !m.Valid() {
		return DefaultMode
	}
	return m
}
