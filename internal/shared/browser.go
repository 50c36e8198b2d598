package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// browserCommand picks the platform launcher for url, or nil when the
// platform has none we know about.
func browserCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", url)
	case "linux":
		return exec.Command("xdg-open", url)
	case "windows":
		return exec.Command("cmd", "/c", "start", url)
	}
	return nil
}

// OpenBrowser opens the default system browser at url. Used during login so
// the operator lands on the authorization page without copying the URL.
func OpenBrowser(url string) error {
	rt := getRuntime()
	cmd := browserCommand(rt, url)
	if cmd == nil {
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
