// Package yaml provides machine-readable YAML output
package yaml

import (
	"io"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/types"
	"gopkg.in/yaml.v3"
)

// Renderer writes each result as one YAML document.
type Renderer struct {
	output io.Writer
}

// New creates a new YAML renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) encode(data any) error {
	encoder := yaml.NewEncoder(r.output)
	encoder.SetIndent(2)
	defer func() { _ = encoder.Close() }()
	return encoder.Encode(data)
}

func (r *Renderer) RenderInstall(result *types.InstallResult) error { return r.encode(result) }
func (r *Renderer) RenderRemove(result *types.RemoveResult) error   { return r.encode(result) }
func (r *Renderer) RenderOwners(result *types.OwnerResult) error    { return r.encode(result) }
func (r *Renderer) RenderList(result *types.ListResult) error       { return r.encode(result) }
func (r *Renderer) RenderFiles(result *types.FilesResult) error     { return r.encode(result) }
func (r *Renderer) RenderCheck(result *types.CheckResult) error     { return r.encode(result) }

// RenderError renders an error as YAML
func (r *Renderer) RenderError(err error) error {
	return r.encode(errors.Report(err))
}

// RenderMessage renders a simple message as YAML
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
