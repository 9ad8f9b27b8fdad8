package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var colorRed = lipgloss.Color("167") // Soft red - errors

const iconError = "✗"

// PrintError writes one line per problem in err to w. The first line carries
// an error icon; the rest are indented under it. Colors are only emitted when
// w is a terminal.
func PrintError(w io.Writer, err error) {
	icon := lipgloss.NewRenderer(w).NewStyle().Foreground(colorRed).Render(iconError)
	for i, line := range Details(err) {
		if i > 0 {
			icon = " "
		}
		fmt.Fprintln(w, icon+" "+line)
	}
}
