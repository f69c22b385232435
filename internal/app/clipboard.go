package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

type clipboardMethod uint8

const (
	clipboardMethodSystem clipboardMethod = iota
	clipboardMethodOSC52
)

const disableOSC52EnvVar = "NOTESAPP_DISABLE_OSC52"

var clipboardWriteAll = clipboard.WriteAll
var clipboardWriteOSC52 = writeOSC52Clipboard

// copyTextToClipboard copies note content, preferring the system clipboard
// and falling back to an OSC52 escape so it also works over SSH.
func copyTextToClipboard(text string) (clipboardMethod, error) {
	backends := []struct {
		method clipboardMethod
		write  func(string) error
	}{
		{clipboardMethodSystem, clipboardWriteAll},
		{clipboardMethodOSC52, clipboardWriteOSC52},
	}
	var failures []string
	for _, backend := range backends {
		err := backend.write(text)
		if err == nil {
			return backend.method, nil
		}
		failures = append(failures, err.Error())
	}
	if noDisplay() {
		failures[0] = "no display"
	}
	return clipboardMethodSystem, fmt.Errorf("copy failed (system: %s; osc52: %s)", failures[0], failures[1])
}

func writeOSC52Clipboard(text string) error {
	if !osc52Enabled() {
		return errors.New("terminal does not accept OSC52")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	return writeOSC52Sequence(tty, text)
}

// writeOSC52Sequence writes text as OSC52 escapes suited to the current
// multiplexer. Inside tmux both the raw and the wrapped form are sent since
// passthrough support varies.
func writeOSC52Sequence(w io.Writer, text string) error {
	seq := osc52.New(text)
	var forms []osc52.Sequence
	switch {
	case os.Getenv("TMUX") != "":
		forms = []osc52.Sequence{seq, seq.Tmux()}
	case strings.HasPrefix(strings.ToLower(os.Getenv("TERM")), "screen"):
		forms = []osc52.Sequence{seq.Screen()}
	default:
		forms = []osc52.Sequence{seq}
	}
	for _, form := range forms {
		if _, err := form.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

func osc52Enabled() bool {
	if truthy(os.Getenv(disableOSC52EnvVar)) {
		return false
	}
	term := strings.TrimSpace(os.Getenv("TERM"))
	return term != "" && !strings.EqualFold(term, "dumb")
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func noDisplay() bool {
	return strings.TrimSpace(os.Getenv("DISPLAY")) == "" && strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) == ""
}
