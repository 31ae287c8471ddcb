// Package ui renders command results as rich terminal output, plain text,
// JSON or YAML.
package ui

import (
	"io"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/types"
	"github.com/arthur-debert/pkgdb/pkg/ui/json"
	"github.com/arthur-debert/pkgdb/pkg/ui/terminal"
	"github.com/arthur-debert/pkgdb/pkg/ui/text"
	"github.com/arthur-debert/pkgdb/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	RenderInstall(result *types.InstallResult) error
	RenderRemove(result *types.RemoveResult) error
	RenderOwners(result *types.OwnerResult) error
	RenderList(result *types.ListResult) error
	RenderFiles(result *types.FilesResult) error
	RenderCheck(result *types.CheckResult) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer returns the renderer for format writing to output. FormatAuto
// is resolved with DetectFormat.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	if format == FormatAuto {
		format = DetectFormat(output)
	}
	switch format {
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format %v", format)
	}
}
