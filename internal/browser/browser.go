// Package browser opens URLs in the system default browser. Used for
// wallet-approval links and post media that a terminal cannot render.
package browser

import (
	"log/slog"
	"os/exec"
	"runtime"
)

// Opener launches URLs with the platform's default handler
type Opener struct {
	logger *slog.Logger
}

// NewOpener creates an Opener
func NewOpener(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{logger: logger}
}

// Open launches the URL without waiting for the handler to exit
func (o *Opener) Open(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	o.logger.Info("opening in browser", "os", runtime.GOOS, "url", url)

	return cmd.Start()
}
