//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpFlag(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	// flag exits 0 for -help
	require.NoError(t, err, "Help flag should exit cleanly")

	output := string(out)
	require.True(t, strings.Contains(output, "Usage"), "Help should contain usage")
	require.Contains(t, output, "-endpoint")
	require.Contains(t, output, "-status")
	require.Contains(t, output, "-config")
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("-no-mouse"))
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Factura"), "Should show the form")

	tf.OpenHelp()
	require.True(t, tf.SeePlain("Invoice Search Help"), "Should show help in the pager")
	require.True(t, tf.SeePlain("ctrl+p"), "Help should list the dialog bindings")

	tf.Snapshot()
	tf.Quit()
	require.True(t, tf.SeePlain("Factura"), "Should return to the form after closing the pager")
}
