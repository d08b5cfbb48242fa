package tui

import tm "github.com/buger/goterm"

// ClearScreen clears the terminal before a countdown and reports whether it did. It does
// nothing when stdout is not a terminal.
func ClearScreen() bool {
	if !HasTTY {
		return false
	}
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
	return true
}
