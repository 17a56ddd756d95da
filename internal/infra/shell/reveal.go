package shell

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Revealer opens directories in the platform file manager.
type Revealer struct{}

func (Revealer) Reveal(path string) error {
	norm := filepath.Clean(path)
	switch runtime.GOOS {
	case "windows":
		// explorer exits non-zero even on success, so only start it.
		return exec.Command("explorer", norm).Start()
	case "darwin":
		return exec.Command("open", norm).Start()
	case "linux":
		return exec.Command("xdg-open", norm).Start()
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
