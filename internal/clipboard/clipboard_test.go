package clipboard

import (
	"errors"
	"os/exec"
	"testing"
)

func withInstalled(t *testing.T, names ...string) {
	t.Helper()
	installed := make(map[string]bool, len(names))
	for _, n := range names {
		installed[n] = true
	}
	orig := lookPath
	lookPath = func(file string) (string, error) {
		if installed[file] {
			return "/usr/bin/" + file, nil
		}
		return "", exec.ErrNotFound
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestFindTool(t *testing.T) {
	tests := []struct {
		name      string
		goos      string
		installed []string
		want      string
		wantErr   bool
	}{
		{name: "darwin pbcopy", goos: "darwin", installed: []string{"pbcopy"}, want: "pbcopy"},
		{name: "linux prefers wayland", goos: "linux", installed: []string{"xclip", "wl-copy"}, want: "wl-copy"},
		{name: "linux xclip", goos: "linux", installed: []string{"xclip", "xsel"}, want: "xclip"},
		{name: "linux xsel", goos: "linux", installed: []string{"xsel"}, want: "xsel"},
		{name: "linux none", goos: "linux", wantErr: true},
		{name: "unsupported os", goos: "plan9", installed: []string{"pbcopy"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withInstalled(t, tt.installed...)
			got, err := findTool(tt.goos)
			if tt.wantErr {
				if !errors.Is(err, ErrClipboardUnavailable) {
					t.Errorf("findTool(%q) error = %v, want ErrClipboardUnavailable", tt.goos, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("findTool(%q) error = %v", tt.goos, err)
			}
			if got.name != tt.want {
				t.Errorf("findTool(%q) = %q, want %q", tt.goos, got.name, tt.want)
			}
		})
	}
}

func TestCopy_Unavailable(t *testing.T) {
	withInstalled(t)
	if err := Copy("flowchart LR"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("Copy() error = %v, want ErrClipboardUnavailable", err)
	}
	if IsAvailable() {
		t.Error("IsAvailable() = true with no tools installed")
	}
}
