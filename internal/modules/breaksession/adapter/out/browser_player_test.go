package out

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenerPerPlatform(t *testing.T) {
	t.Parallel()
	name, args, err := opener("linux", "https://www.youtube.com/embed/x")
	require.NoError(t, err)
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"https://www.youtube.com/embed/x"}, args)

	name, _, err = opener("darwin", "u")
	require.NoError(t, err)
	assert.Equal(t, "open", name)

	_, _, err = opener("plan9", "u")
	assert.Error(t, err)
}

func TestPlayRunsOpener(t *testing.T) {
	t.Parallel()
	var gotName string
	var gotArgs []string
	p := &BrowserPlayer{
		goos: "linux",
		command: func(ctx context.Context, name string, args ...string) *exec.Cmd {
			gotName, gotArgs = name, args
			return exec.CommandContext(ctx, "true")
		},
	}
	require.NoError(t, p.Play(context.Background(), "https://www.youtube.com/embed/x"))
	assert.Equal(t, "xdg-open", gotName)
	assert.Equal(t, []string{"https://www.youtube.com/embed/x"}, gotArgs)
}

func TestPlaySkipsEmptyLocator(t *testing.T) {
	t.Parallel()
	p := &BrowserPlayer{
		goos: "linux",
		command: func(context.Context, string, ...string) *exec.Cmd {
			t.Fatalf("opener must not run for an empty locator")
			return nil
		},
	}
	require.NoError(t, p.Play(context.Background(), ""))
}
