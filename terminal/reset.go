package terminal

import (
	"io"
	"os"
)

var resetSequence = []byte(
	"\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l" + // Mouse tracking off
		"\x1b[?25h" + // Cursor visible
		"\x1b[?1049l" + // Leave alternate screen
		"\x1b[0m" + // Reset attributes
		"\x1b[?7h", // Auto-wrap on
)

// EmergencyReset restores a sane terminal without the screen object, for use
// when a crash happens before or after the window owns the terminal
func EmergencyReset(w io.Writer) {
	w.Write(resetSequence)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
