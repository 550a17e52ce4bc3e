package clipboard

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/andareed/dynonview/logging"
	system "github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

var errUnavailable = errors.New("clipboard unavailable (no system clipboard and OSC52 unsupported by terminal)")

// Copy puts text on the system clipboard, falling back to an OSC52
// escape sequence when no clipboard utility is installed (ssh sessions).
func Copy(text string) error {
	if !system.Unsupported {
		err := system.WriteAll(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes via system clipboard", len(text))
			return nil
		}
		logging.Warnf("Clipboard: system clipboard failed: %v", err)
	}
	return copyOSC52(os.Stderr, text)
}

func copyOSC52(out *os.File, text string) error {
	if !osc52Supported(out) {
		logging.Warnf("Clipboard: OSC52 unavailable (not a TTY or TERM=dumb)")
		return errUnavailable
	}
	if _, err := writeOSC52(out, text, os.Getenv("TERM")); err != nil {
		logging.Warnf("Clipboard: OSC52 write failed: %v", err)
		return err
	}
	logging.Infof("Clipboard: copied via OSC52")
	return nil
}

// writeOSC52 wraps the sequence for tmux and screen, which swallow it otherwise.
func writeOSC52(w io.Writer, text, term string) (int64, error) {
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}
	return seq.WriteTo(w)
}

func osc52Supported(f *os.File) bool {
	if term := os.Getenv("TERM"); term == "" || strings.EqualFold(term, "dumb") {
		return false
	}
	return isTTY(f)
}

func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
