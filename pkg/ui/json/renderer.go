// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

func (r *Renderer) RenderInstall(result *types.InstallResult) error { return r.encoder.Encode(result) }
func (r *Renderer) RenderRemove(result *types.RemoveResult) error   { return r.encoder.Encode(result) }
func (r *Renderer) RenderOwners(result *types.OwnerResult) error    { return r.encoder.Encode(result) }
func (r *Renderer) RenderList(result *types.ListResult) error       { return r.encoder.Encode(result) }
func (r *Renderer) RenderFiles(result *types.FilesResult) error     { return r.encoder.Encode(result) }
func (r *Renderer) RenderCheck(result *types.CheckResult) error     { return r.encoder.Encode(result) }

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(errors.Report(err))
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
