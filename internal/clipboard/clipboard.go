// Package clipboard copies text to the system clipboard through the
// platform's command-line tool.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("no clipboard tool found")

// tool is a clipboard command and its arguments.
type tool struct {
	name string
	args []string
}

var lookPath = exec.LookPath

// candidates lists the tools to try for goos, in order of preference.
func candidates(goos string, wayland bool) []tool {
	switch goos {
	case "darwin":
		return []tool{{name: "pbcopy"}}
	case "windows":
		return []tool{{name: "cmd", args: []string{"/c", "clip"}}}
	}
	var out []tool
	if wayland {
		out = append(out, tool{name: "wl-copy"})
	}
	return append(out,
		tool{name: "xclip", args: []string{"-selection", "clipboard"}},
		tool{name: "xsel", args: []string{"--clipboard", "--input"}},
	)
}

func find() (tool, error) {
	wayland := os.Getenv("WAYLAND_DISPLAY") != ""
	for _, t := range candidates(runtime.GOOS, wayland) {
		if _, err := lookPath(t.name); err == nil {
			return t, nil
		}
	}
	return tool{}, ErrUnavailable
}

// Write copies text to the system clipboard.
func Write(text string) error {
	t, err := find()
	if err != nil {
		return err
	}
	cmd := exec.Command(t.name, t.args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", t.name, err)
	}
	return nil
}

// Available reports whether Write has a tool to use.
func Available() bool {
	_, err := find()
	return err == nil
}
