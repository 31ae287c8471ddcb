// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pkgdb/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(r.output, format, args...)
	return err
}

// RenderInstall prints one line per installed archive.
func (r *Renderer) RenderInstall(result *types.InstallResult) error {
	for _, p := range result.Packages {
		if err := r.printf("installed %s\n", p.Archive); err != nil {
			return err
		}
	}
	return nil
}

// RenderRemove prints one line per removed package, plus any entry that
// could not be removed.
func (r *Renderer) RenderRemove(result *types.RemoveResult) error {
	for _, report := range result.Reports {
		for _, f := range report.Failed {
			if err := r.printf("failed %s: %s\n", f.Path, f.Error); err != nil {
				return err
			}
		}
		if err := r.printf("removed %s\n", report.Package); err != nil {
			return err
		}
	}
	return nil
}

// RenderOwners prints "/path is owned by pkg" per owner.
func (r *Renderer) RenderOwners(result *types.OwnerResult) error {
	for _, q := range result.Queries {
		display := "/" + strings.TrimLeft(q.Path, "/")
		if len(q.Owners) == 0 {
			if err := r.printf("%s is not owned by any package\n", display); err != nil {
				return err
			}
			continue
		}
		for _, owner := range q.Owners {
			if err := r.printf("%s is owned by %s\n", display, owner); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderList prints one package id per line.
func (r *Renderer) RenderList(result *types.ListResult) error {
	for _, p := range result.Packages {
		if err := r.printf("%s\n", p.ID()); err != nil {
			return err
		}
	}
	return nil
}

// RenderFiles prints the recorded paths, one per line.
func (r *Renderer) RenderFiles(result *types.FilesResult) error {
	for _, f := range result.Files {
		if err := r.printf("%s\n", f); err != nil {
			return err
		}
	}
	return nil
}

// RenderCheck prints the missing paths of each package.
func (r *Renderer) RenderCheck(result *types.CheckResult) error {
	for _, p := range result.Packages {
		if len(p.Missing) == 0 {
			if err := r.printf("%s: ok\n", p.Name); err != nil {
				return err
			}
			continue
		}
		for _, m := range p.Missing {
			if err := r.printf("%s: missing %s\n", p.Name, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	return r.printf("Error: %v\n", err)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.printf("%s\n", msg)
}
