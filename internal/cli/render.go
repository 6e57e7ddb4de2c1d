package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/orchestron-dev/orchestron/internal/runtime"
	"github.com/orchestron-dev/orchestron/pkg/domain"
)

// PrintResult writes the structured outcome of a node run as indented JSON.
func PrintResult(w io.Writer, res domain.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if res.OK {
		return enc.Encode(res.Payload)
	}
	return enc.Encode(map[string]any{
		"status": "failed",
		"kind":   res.Failure.Kind,
		"node":   res.Failure.Node,
		"error":  res.Failure.Message,
	})
}

// PrintChainResult writes the per-step trace and the aggregate of a chain run.
func PrintChainResult(w io.Writer, res runtime.ChainResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// NodeListMarkdown renders the registered node catalog as a markdown document.
func NodeListMarkdown(descs []domain.Descriptor) string {
	var b strings.Builder
	b.WriteString("# Nodes\n\n")
	for _, d := range descs {
		fmt.Fprintf(&b, "## %s\n\n", d.Name)
		if d.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", d.Description)
		}
		if len(d.Parameters) > 0 {
			b.WriteString("| Parameter | Type | Required | Default |\n")
			b.WriteString("|---|---|---|---|\n")
			for _, p := range d.Parameters {
				def := ""
				if p.Default != nil {
					def = fmt.Sprintf("%v", p.Default)
				}
				fmt.Fprintf(&b, "| %s | %s | %v | %s |\n", p.Name, p.Type, p.Required, def)
			}
			b.WriteString("\n")
		}
		if len(d.ConfigKeys) > 0 {
			fmt.Fprintf(&b, "Config keys: `%s`\n\n", strings.Join(d.ConfigKeys, "`, `"))
		}
	}
	return b.String()
}

// ChainListMarkdown renders the registered chain catalog as markdown.
func ChainListMarkdown(chains []domain.ChainSpec) string {
	var b strings.Builder
	b.WriteString("# Chains\n\n")
	for _, c := range chains {
		fmt.Fprintf(&b, "## %s\n\n", c.Name)
		if c.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", c.Description)
		}
		for i, step := range c.Steps {
			fmt.Fprintf(&b, "%d. `%s`", i+1, step.Node)
			if step.Alias != "" {
				fmt.Fprintf(&b, " (as %s)", step.Alias)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderMarkdown writes markdown to w, styled with glamour when the target is
// an interactive color terminal and left raw when piped or NO_COLOR is set.
func RenderMarkdown(w io.Writer, markdown string) error {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) && termenv.EnvColorProfile() != termenv.Ascii {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err == nil {
			out, rerr := r.Render(markdown)
			if rerr == nil {
				_, werr := io.WriteString(w, out)
				return werr
			}
		}
	}
	_, err := io.WriteString(w, markdown)
	return err
}
