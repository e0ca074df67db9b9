package config

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalid matches every *ConfigError with errors.Is.
var ErrInvalid = errors.New("invalid configuration")

// Problem is one rejected setting, named by its dotted TOML key.
type Problem struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (p Problem) String() string { return p.Key + ": " + p.Message }

func problemf(key, format string, args ...any) Problem {
	return Problem{Key: key, Message: fmt.Sprintf(format, args...)}
}

// ConfigError reports everything wrong with one configuration file.
// Missing environment variables stop loading before validation runs, so
// at most one of Missing and Problems is set by Load.
type ConfigError struct {
	Path     string
	Missing  []string
	Problems []Problem
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config %s", e.Path)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing environment variables: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Problems) > 0 {
		fmt.Fprintf(&b, ": %d invalid settings", len(e.Problems))
		for _, p := range e.sorted() {
			b.WriteString("\n  - ")
			b.WriteString(p.String())
		}
	}
	return b.String()
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalid }

// sorted orders problems by key so map-backed settings report stably.
func (e *ConfigError) sorted() []Problem {
	ps := slices.Clone(e.Problems)
	slices.SortStableFunc(ps, func(a, b Problem) int { return cmp.Compare(a.Key, b.Key) })
	return ps
}

// Under returns the problems whose key is prefix or nested below it, such
// as "cache.ttls" or "metadata.field_sources".
func (e *ConfigError) Under(prefix string) []Problem {
	var out []Problem
	for _, p := range e.sorted() {
		if p.Key == prefix || strings.HasPrefix(p.Key, prefix+".") {
			out = append(out, p)
		}
	}
	return out
}
