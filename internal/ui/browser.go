package ui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openBrowser starts the platform's URL handler without waiting for it.
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "linux", "freebsd", "openbsd":
		for _, opener := range []string{"xdg-open", "x-www-browser", "gnome-open", "kde-open"} {
			if _, err := exec.LookPath(opener); err == nil {
				cmd = exec.Command(opener, url)
				break
			}
		}
		if cmd == nil {
			return fmt.Errorf("no browser launcher found (tried xdg-open, x-www-browser, gnome-open, kde-open)")
		}
	default:
		return fmt.Errorf("opening links is not supported on %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
