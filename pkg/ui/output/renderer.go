// Package output renders run summaries for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/gibfahn/dot/pkg/types"
)

// Renderer writes user-facing summaries, styled when the destination is
// a terminal and plain otherwise.
type Renderer struct {
	w      io.Writer
	styled bool
}

// NewRenderer creates a Renderer, auto-detecting whether w is a TTY
func NewRenderer(w io.Writer) *Renderer {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{w: w, styled: styled}
}

// NewRendererWithMode creates a Renderer with styling forced on or off
func NewRendererWithMode(w io.Writer, styled bool) *Renderer {
	return &Renderer{w: w, styled: styled}
}

// RenderLinkResult prints the summary of a link run
func (r *Renderer) RenderLinkResult(result *types.LinkResult) {
	if !result.Mutated() {
		r.printf("%s\n", r.style(successStyle,
			fmt.Sprintf("Everything already linked (%d entries).", len(result.AlreadyLinked))))
		return
	}

	r.printf("%s\n", r.style(headerStyle, "Link run complete"))
	r.printf("  %s\n", r.style(successStyle, fmt.Sprintf("%d linked", len(result.Linked))))
	if len(result.AlreadyLinked) > 0 {
		r.printf("  %d already linked\n", len(result.AlreadyLinked))
	}
	if len(result.Displaced) > 0 {
		r.printf("  %s\n", r.style(warningStyle,
			fmt.Sprintf("%d existing paths moved to backup:", len(result.Displaced))))
		for _, rel := range result.Displaced {
			r.printf("    %s\n", r.style(pathStyle, rel))
		}
	}
}

// RenderEnv prints a resolved environment mapping as sorted KEY=value lines
func (r *Renderer) RenderEnv(env map[string]string) {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		r.printf("%s=%s\n", r.style(headerStyle, key), env[key])
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}
