package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	breakout "cigbreak/internal/modules/breaksession/port/out"
)

// BrowserPlayer hands the embed locator to the desktop's URL opener.
type BrowserPlayer struct {
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
	goos    string
}

func NewBrowserPlayer() breakout.Player {
	return &BrowserPlayer{command: exec.CommandContext, goos: runtime.GOOS}
}

func (p *BrowserPlayer) Play(ctx context.Context, embedURL string) error {
	if embedURL == "" {
		return nil
	}
	name, args, err := opener(p.goos, embedURL)
	if err != nil {
		return err
	}
	// Start without waiting; the opener outlives a short request context.
	cmd := p.command(context.WithoutCancel(ctx), name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open clip in browser: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func opener(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("browser playback is not supported on %s", goos)
	}
}
