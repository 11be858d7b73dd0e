package cli

import (
	"os"
	"testing"

	"github.com/slip39kit/slip39/internal/config"
	"github.com/slip39kit/slip39/internal/output"
)

// setupTestEnv points the package-level cfg/formatter globals at a fresh
// temp directory and restores the originals on cleanup. Returns the temp
// directory so callers can assert on files written under it.
func setupTestEnv(t *testing.T) (string, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "slip39-cli-test")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}

	origCfg := cfg
	origFormatter := formatter
	origLogger := logger

	testCfg := config.Defaults()
	testCfg.Home = tmpDir
	cfg = testCfg
	formatter = output.NewFormatter(output.FormatText, os.Stdout)
	logger = config.NullLogger()

	return tmpDir, func() {
		cfg = origCfg
		formatter = origFormatter
		logger = origLogger
		_ = os.RemoveAll(tmpDir)
	}
}

// withMockPrompts replaces prompt functions for testing and restores on cleanup.
func withMockPrompts(t *testing.T, password []byte, confirm bool) {
	t.Helper()
	origPW := promptPasswordFn
	origNewPW := promptNewPasswordFn
	origConfirm := promptConfirmFn
	origPassphrase := promptPassphraseFn
	t.Cleanup(func() {
		promptPasswordFn = origPW
		promptNewPasswordFn = origNewPW
		promptConfirmFn = origConfirm
		promptPassphraseFn = origPassphrase
	})
	promptPasswordFn = func(_ string) ([]byte, error) {
		cp := make([]byte, len(password))
		copy(cp, password)
		return cp, nil
	}
	promptNewPasswordFn = func() ([]byte, error) {
		cp := make([]byte, len(password))
		copy(cp, password)
		return cp, nil
	}
	promptConfirmFn = func(_ string) bool { return confirm }
	promptPassphraseFn = func() (string, error) {
		return "testpassphrase", nil
	}
}
