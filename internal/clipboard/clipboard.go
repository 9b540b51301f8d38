// Package clipboard copies rendered diagrams to the system clipboard through
// the platform's clipboard command.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when no clipboard command is installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// tool is a clipboard command and the arguments that make it read stdin.
type tool struct {
	name string
	args []string
}

// candidates lists clipboard tools per GOOS in preference order.
var candidates = map[string][]tool{
	"darwin": {{name: "pbcopy"}},
	"linux": {
		{name: "wl-copy"},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
	},
	"windows": {{name: "clip"}},
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// findTool returns the first installed clipboard tool for goos.
func findTool(goos string) (tool, error) {
	for _, t := range candidates[goos] {
		if _, err := lookPath(t.name); err == nil {
			return t, nil
		}
	}
	return tool{}, ErrClipboardUnavailable
}

// IsAvailable reports whether a clipboard tool is installed.
func IsAvailable() bool {
	_, err := findTool(runtime.GOOS)
	return err == nil
}

// Copy places text on the system clipboard.
func Copy(text string) error {
	t, err := findTool(runtime.GOOS)
	if err != nil {
		return err
	}
	cmd := exec.Command(t.name, t.args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %w: %s", t.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
