package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"

	"cigbreak/internal/modules/reminder/domain"
	reminderout "cigbreak/internal/modules/reminder/port/out"
)

// DesktopNotifier shows reminders through the platform notification helper.
// Permission is granted whenever the helper binary is installed.
type DesktopNotifier struct {
	goos     string
	lookPath func(file string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

func NewDesktopNotifier() reminderout.Notifier {
	return &DesktopNotifier{goos: runtime.GOOS, lookPath: exec.LookPath, command: exec.CommandContext}
}

func (n *DesktopNotifier) helper() string {
	switch n.goos {
	case "darwin":
		return "osascript"
	case "linux", "freebsd", "openbsd":
		return "notify-send"
	default:
		return ""
	}
}

func (n *DesktopNotifier) Available() bool {
	name := n.helper()
	if name == "" {
		return false
	}
	_, err := n.lookPath(name)
	return err == nil
}

func (n *DesktopNotifier) Permission(context.Context) domain.Permission {
	if n.Available() {
		return domain.PermissionGranted
	}
	return domain.PermissionDenied
}

func (n *DesktopNotifier) RequestPermission(ctx context.Context) (domain.Permission, error) {
	return n.Permission(ctx), nil
}

func (n *DesktopNotifier) Notify(ctx context.Context, note domain.Notification) error {
	name, args := n.args(note)
	if name == "" {
		return fmt.Errorf("desktop notifications are not supported on %s", n.goos)
	}
	if out, err := n.command(ctx, name, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}

func (n *DesktopNotifier) args(note domain.Notification) (string, []string) {
	switch name := n.helper(); name {
	case "osascript":
		script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(note.Body), strconv.Quote(note.Title))
		return name, []string{"-e", script}
	case "notify-send":
		return name, []string{"--app-name=cigbreak", note.Title, note.Body}
	default:
		return "", nil
	}
}
