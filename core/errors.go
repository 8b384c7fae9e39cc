package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported marks an operation a site does not implement.
	ErrUnsupported = errors.New("operation not supported for this source")

	// ErrInvalidSite is returned for a site name that is not registered.
	ErrInvalidSite = errors.New("invalid site")

	// ErrInvalidOutputDir is returned when the output path exists but is not a directory.
	ErrInvalidOutputDir = errors.New("invalid output dir")

	// ErrMissingLanguage is returned when a source has no lines for a required language.
	ErrMissingLanguage = errors.New("missing language")
)

// UnsupportedError names the site and the operation it lacks.
type UnsupportedError struct {
	Site string
	Op   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not implemented for %s", e.Op, e.Site)
}

// Is lets errors.Is(err, ErrUnsupported) match.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Require returns ErrMissingLanguage if any of langs has no lines.
func (l *Lyrics) Require(langs ...string) error {
	for _, lang := range langs {
		if len(l.Lines[lang]) == 0 {
			return fmt.Errorf("%w: no %s lyrics found", ErrMissingLanguage, lang)
		}
	}
	return nil
}
