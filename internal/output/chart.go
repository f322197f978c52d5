package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/board"
)

// ChartWidth is the number of cells in the summary bar.
const ChartWidth = 40

// Slice colors.
var (
	CompletedColor = lipgloss.Color("#4CAF50")
	PendingColor   = lipgloss.Color("#FF9800")
)

const (
	completedCell = "█"
	pendingCell   = "░"
	emptyCell     = "·"
	legendMark    = "■"
)

// FormatSummary writes the chart heading, the completion bar and its legend.
// Colors are only emitted when w is a color-capable terminal.
func FormatSummary(w io.Writer, title string, sum board.Summary) {
	fmt.Fprintln(w, RenderChart(lipgloss.NewRenderer(w), title, sum, ChartWidth))
}

// RenderChart renders a two-slice completion chart as three lines.
func RenderChart(r *lipgloss.Renderer, title string, sum board.Summary, width int) string {
	done := r.NewStyle().Foreground(CompletedColor)
	pending := r.NewStyle().Foreground(PendingColor)
	heading := r.NewStyle().Bold(true)

	var bar string
	if sum.Total() == 0 {
		bar = strings.Repeat(emptyCell, width)
	} else {
		n := share(sum.Completed, sum.Total(), width)
		bar = done.Render(strings.Repeat(completedCell, n)) +
			pending.Render(strings.Repeat(pendingCell, width-n))
	}

	donePct, pendingPct := percentages(sum)
	legend := fmt.Sprintf("%s Completed %d (%d%%)   %s Pending %d (%d%%)",
		done.Render(legendMark), sum.Completed, donePct,
		pending.Render(legendMark), sum.Pending, pendingPct)

	return heading.Render(title) + "\n" + bar + "\n" + legend
}

// share returns part/total of width, rounded to the nearest cell.
func share(part, total, width int) int {
	if total == 0 {
		return 0
	}
	return (part*width + total/2) / total
}

func percentages(sum board.Summary) (int, int) {
	if sum.Total() == 0 {
		return 0, 0
	}
	done := share(sum.Completed, sum.Total(), 100)
	return done, 100 - done
}
