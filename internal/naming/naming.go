// Package naming renders archive names from templates.
//
// A template is literal text with placeholders:
//   - :name is replaced by the archive's base name
//   - :date is replaced by the current date as YYYY-MM-DD
//
// Any other ":word" token is an unresolved placeholder and makes the template
// invalid.
package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Placeholder tokens.
const (
	NamePlaceholder = ":name"
	DatePlaceholder = ":date"
)

// DefaultTemplate is used when no template is configured.
const DefaultTemplate = NamePlaceholder

// DateLayout is the layout :date renders with.
const DateLayout = "2006-01-02"

var (
	// ErrUnresolvedPlaceholder is returned for templates holding unknown placeholders.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	// ErrInvalidName is returned when a rendered name is unusable as a file name.
	ErrInvalidName = errors.New("invalid archive name")
)

var placeholderRegex = regexp.MustCompile(`:[A-Za-z]+`)

// Validate checks that template only uses known placeholders and cannot
// render to a path.
func Validate(template string) error {
	if strings.ContainsAny(template, `/\`) {
		return fmt.Errorf("%w: template %q contains a path separator", ErrInvalidName, template)
	}
	for _, token := range placeholderRegex.FindAllString(template, -1) {
		if token != NamePlaceholder && token != DatePlaceholder {
			return fmt.Errorf("%w: %s in template %q", ErrUnresolvedPlaceholder, token, template)
		}
	}
	return nil
}

// Render substitutes name and date into template in a single pass, so text
// introduced by a substitution is never substituted again.
// An empty template renders as DefaultTemplate.
func Render(template, name string, date time.Time) (string, error) {
	if template == "" {
		template = DefaultTemplate
	}
	if err := Validate(template); err != nil {
		return "", err
	}

	r := strings.NewReplacer(
		NamePlaceholder, name,
		DatePlaceholder, date.Format(DateLayout),
	)
	rendered := strings.TrimSpace(r.Replace(template))

	switch {
	case rendered == "", rendered == ".", rendered == "..":
		return "", fmt.Errorf("%w: template %q renders to %q", ErrInvalidName, template, rendered)
	case strings.ContainsAny(rendered, `/\`):
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, rendered)
	}

	return rendered, nil
}
