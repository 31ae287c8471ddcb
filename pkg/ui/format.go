package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects a Renderer.
type Format int

const (
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	FormatJSON
	FormatYAML
)

// formatNames holds the canonical name of each format first, then aliases.
var formatNames = map[Format][]string{
	FormatAuto:     {"auto", ""},
	FormatTerminal: {"term", "terminal"},
	FormatText:     {"text", "plain"},
	FormatJSON:     {"json"},
	FormatYAML:     {"yaml", "yml"},
}

// Formats lists the canonical format names accepted by --format.
func Formats() []string {
	return []string{"auto", "term", "text", "json", "yaml"}
}

func (f Format) String() string {
	if names, ok := formatNames[f]; ok {
		return names[0]
	}
	return "unknown"
}

// ParseFormat maps a --format value, case-insensitively, to a Format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, names := range formatNames {
		for _, name := range names {
			if name == s {
				return f, nil
			}
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown output format %q", s).
		WithDetail("valid", Formats())
}

// DetectFormat picks the format for FormatAuto. Files get styled output
// only when they are a color-capable terminal and NO_COLOR is unset; other
// writers get the terminal renderer.
func DetectFormat(w io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	f, ok := w.(*os.File)
	if !ok {
		return FormatTerminal
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(f).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
