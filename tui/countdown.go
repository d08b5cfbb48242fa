package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tm "github.com/buger/goterm"
	"github.com/charmbracelet/lipgloss"
)

var countdownStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#a60853", Dark: "#F652A0"})

// Countdown writes the remaining seconds to w once per second, rewriting the same line, and
// returns when the count reaches zero or ctx is done. sleep defaults to time.Sleep.
func Countdown(ctx context.Context, w io.Writer, seconds int, sleep func(time.Duration)) error {
	if sleep == nil {
		sleep = time.Sleep
	}
	for remaining := seconds; remaining > 0; remaining-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(w, tm.ResetLine("waking up in: " + countdownStyle.Render(fmt.Sprint(remaining))))
		sleep(time.Second)
	}
	fmt.Fprint(w, tm.ResetLine(""))
	return ctx.Err()
}
