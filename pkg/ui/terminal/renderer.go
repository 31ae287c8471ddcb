// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/style"
	"github.com/arthur-debert/pkgdb/pkg/types"
	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}

// RenderInstall shows each installed package with its entry count.
func (r *Renderer) RenderInstall(result *types.InstallResult) error {
	for _, p := range result.Packages {
		line := fmt.Sprintf("%s installed %s %s",
			style.SuccessIndicator,
			style.Package(p.ID()),
			style.MutedStyle.Render(fmt.Sprintf("(%d entries from %s)", p.Entries, p.Archive)))
		if err := r.println(line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRemove shows, per package, what happened to its entries.
func (r *Renderer) RenderRemove(result *types.RemoveResult) error {
	for _, report := range result.Reports {
		indicator := style.SuccessIndicator
		if len(report.Failed) > 0 {
			indicator = style.WarningIndicator
		}
		if err := r.println(fmt.Sprintf("%s removed %s", indicator, style.Package(report.Package))); err != nil {
			return err
		}

		groups := []struct {
			label string
			paths []string
			style func(string) string
		}{
			{"removed", report.Removed, style.Path},
			{"pruned", report.Pruned, func(s string) string { return style.PrunedStyle.Render(s) }},
			{"rejected", report.Rejected, func(s string) string { return style.ProtectedStyle.Render(s) }},
			{"shared", report.Shared, func(s string) string { return style.ProtectedStyle.Render(s) }},
			{"ignored", report.Ignored, func(s string) string { return style.MutedStyle.Render(s) }},
			{"missing", report.Missing, func(s string) string { return style.MutedStyle.Render(s) }},
		}
		for _, g := range groups {
			if len(g.paths) == 0 {
				continue
			}
			summary := fmt.Sprintf("%s %d", g.label, len(g.paths))
			if err := r.println(style.Indent(style.MutedStyle.Render(summary), 1)); err != nil {
				return err
			}
			for _, p := range g.paths {
				if err := r.println(style.Indent(g.style(p), 2)); err != nil {
					return err
				}
			}
		}
		for _, f := range report.Failed {
			line := fmt.Sprintf("%s %s: %s", style.ErrorIndicator, style.Path(f.Path), f.Error)
			if err := r.println(style.Indent(line, 1)); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderOwners shows the owners of each queried path.
func (r *Renderer) RenderOwners(result *types.OwnerResult) error {
	for _, q := range result.Queries {
		path := style.Path("/" + strings.TrimLeft(q.Path, "/"))
		if len(q.Owners) == 0 {
			if err := r.println(fmt.Sprintf("%s %s %s", style.PendingIndicator, path,
				style.MutedStyle.Render("is not owned by any package"))); err != nil {
				return err
			}
			continue
		}
		owners := make([]string, len(q.Owners))
		for i, o := range q.Owners {
			owners[i] = style.Package(o)
		}
		if err := r.println(fmt.Sprintf("%s %s is owned by %s", style.InfoIndicator, path,
			strings.Join(owners, ", "))); err != nil {
			return err
		}
	}
	return nil
}

// RenderList shows the installed packages as a table.
func (r *Renderer) RenderList(result *types.ListResult) error {
	if len(result.Packages) == 0 {
		return r.println(style.MutedStyle.Render("No packages installed below " + result.Root))
	}
	if err := r.println(style.TitleStyle.Render(fmt.Sprintf("Installed packages (%s)", result.Root))); err != nil {
		return err
	}

	table := newTable(r.output, "Package", "Version", "Entries")
	for _, p := range result.Packages {
		version := p.Version
		if version == "" {
			version = "-"
		}
		table.Append([]string{p.Name, version, strconv.Itoa(p.Entries)})
	}
	table.Render()
	return nil
}

// RenderFiles lists the entries of a package under a title.
func (r *Renderer) RenderFiles(result *types.FilesResult) error {
	title := fmt.Sprintf("%s %s", style.Package(result.Package.ID()),
		style.MutedStyle.Render(fmt.Sprintf("(%d entries)", len(result.Files))))
	if err := r.println(title); err != nil {
		return err
	}
	for _, f := range result.Files {
		if err := r.println(style.Indent(style.Path(f), 1)); err != nil {
			return err
		}
	}
	return nil
}

// RenderCheck shows a status table and the missing paths.
func (r *Renderer) RenderCheck(result *types.CheckResult) error {
	table := newTable(r.output, "Package", "Status", "Missing")
	for _, p := range result.Packages {
		status := "ok"
		if len(p.Missing) > 0 {
			status = "incomplete"
		}
		table.Append([]string{p.Name, status, strconv.Itoa(len(p.Missing))})
	}
	table.Render()

	for _, p := range result.Packages {
		for _, m := range p.Missing {
			label := style.WarningStyle.Render(strings.TrimSpace(pterm.Warning.Prefix.Text))
			if err := r.println(fmt.Sprintf("%s %s missing %s", label, style.Package(p.Name), style.Path(m))); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	label := style.ErrorStyle.Render(strings.TrimSpace(pterm.Error.Prefix.Text))
	if perr := r.println(fmt.Sprintf("%s %s", label, err.Error())); perr != nil {
		return perr
	}
	for _, p := range errors.CollisionPaths(err) {
		if perr := r.println(style.Indent(fmt.Sprintf("%s %s exists", style.ErrorIndicator, style.Path(p)), 1)); perr != nil {
			return perr
		}
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(fmt.Sprintf("%s %s", style.InfoIndicator, msg))
}

func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}
