package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommandStopsOnCancel(t *testing.T) {
	t.Chdir(t.TempDir())

	root := newTestRoot(t, NewServeCommand())
	var stdout, stderr syncBuffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "Serving on http://127.0.0.1:0")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.Contains(t, stdout.String(), "Press Ctrl+C to stop")
}

func TestServeCommandBadAddress(t *testing.T) {
	_, _, err := execute(t, NewServeCommand(), "", "serve", "--addr", "127.0.0.1:-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen on 127.0.0.1:-1")
}

func TestServeCommandRejectsArgs(t *testing.T) {
	_, _, err := execute(t, NewServeCommand(), "", "serve", "extra")
	require.Error(t, err)
}
