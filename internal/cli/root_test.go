package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slip39kit/slip39/internal/config"
	"github.com/slip39kit/slip39/internal/output"
	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

// errTestRandom is used for testing non-slip39 error handling.
var errTestRandom = slip39err.New("TEST_ERROR", "some random error")

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns success", err: nil, want: slip39err.ExitSuccess},
		{name: "general error", err: slip39err.ErrGeneral, want: slip39err.ExitGeneral},
		{name: "invalid configuration error", err: slip39err.ErrInvalidConfiguration, want: slip39err.ExitInput},
		{name: "invalid share error", err: slip39err.ErrInvalidShare, want: slip39err.ExitInput},
		{name: "invalid share set error", err: slip39err.ErrInvalidShareSet, want: slip39err.ExitInput},
		{name: "division by zero error", err: slip39err.ErrDivisionByZero, want: slip39err.ExitGeneral},
		{name: "non-slip39 error returns general", err: errTestRandom, want: slip39err.ExitGeneral},
		{
			name: "wrapped slip39 error preserves exit code",
			err:  slip39err.Wrap(slip39err.ErrInvalidShareSet, "recover"),
			want: slip39err.ExitInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExitCode(tc.err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestGlobalGetters tests Config(), Logger(), Formatter(), Context() getters.
// NOT parallel: mutates package-level globals.
func TestGlobalGetters(t *testing.T) {
	origCfg := cfg
	origLogger := logger
	origFormatter := formatter
	origCmdCtx := cmdCtx
	defer func() {
		cfg = origCfg
		logger = origLogger
		formatter = origFormatter
		cmdCtx = origCmdCtx
	}()

	testCfg := config.Defaults()
	testLogger := config.NullLogger()
	testFmt := output.NewFormatter(output.FormatText, nil)
	testCtx := &CommandContext{Cfg: testCfg}

	cfg = testCfg
	logger = testLogger
	formatter = testFmt
	cmdCtx = testCtx

	assert.Equal(t, testCfg, Config())
	assert.Equal(t, testLogger, Logger())
	assert.Equal(t, testFmt, Formatter())
	assert.Equal(t, testCtx, Context())
}

// TestCleanup_NilLogger verifies cleanup doesn't panic with nil logger.
func TestCleanup_NilLogger(t *testing.T) {
	origLogger := logger
	defer func() { logger = origLogger }()

	logger = nil
	assert.NotPanics(t, func() { cleanup() })
}

// TestCleanup_WithLogger verifies cleanup doesn't panic with a valid logger.
func TestCleanup_WithLogger(t *testing.T) {
	origLogger := logger
	defer func() { logger = origLogger }()

	logger = config.NullLogger()
	assert.NotPanics(t, func() { cleanup() })
}

// TestFormatErr_NilFormatter verifies formatErr with nil formatter doesn't panic.
func TestFormatErr_NilFormatter(t *testing.T) {
	origFormatter := formatter
	defer func() { formatter = origFormatter }()

	formatter = nil
	assert.NotPanics(t, func() { formatErr(slip39err.ErrGeneral) })
}

// TestFormatErr_WithFormatter verifies formatErr with a valid formatter doesn't panic.
func TestFormatErr_WithFormatter(t *testing.T) {
	origFormatter := formatter
	defer func() { formatter = origFormatter }()

	formatter = output.NewFormatter(output.FormatText, nil)
	assert.NotPanics(t, func() { formatErr(slip39err.ErrGeneral) })
}

// TestFormatErr_JSONFormat verifies formatErr with JSON formatter doesn't panic.
func TestFormatErr_JSONFormat(t *testing.T) {
	origFormatter := formatter
	defer func() { formatter = origFormatter }()

	formatter = output.NewFormatter(output.FormatJSON, nil)
	assert.NotPanics(t, func() { formatErr(slip39err.ErrInvalidConfiguration) })
}

// --- Tests for initGlobals ---

// saveGlobals saves all package-level globals and returns a restore function.
func saveGlobals(t *testing.T) func() {
	t.Helper()
	origCfg := cfg
	origLogger := logger
	origFormatter := formatter
	origCmdCtx := cmdCtx
	origHomeDir := homeDir
	origOutputFormat := outputFormat
	origVerbose := verbose
	return func() {
		cfg = origCfg
		logger = origLogger
		formatter = origFormatter
		cmdCtx = origCmdCtx
		homeDir = origHomeDir
		outputFormat = origOutputFormat
		verbose = origVerbose
	}
}

func TestInitGlobals_DefaultConfig(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir, err := os.MkdirTemp("", "slip39-initglobals-test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	homeDir = tmpDir
	outputFormat = ""
	verbose = false

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err = initGlobals(cmd)
	require.NoError(t, err)

	require.NotNil(t, cfg, "cfg should be set")
	require.NotNil(t, logger, "logger should be set")
	require.NotNil(t, formatter, "formatter should be set")
	require.NotNil(t, cmdCtx, "cmdCtx should be set")

	assert.Equal(t, tmpDir, cfg.Home)
}

func TestInitGlobals_VerboseFlag(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir, err := os.MkdirTemp("", "slip39-initglobals-verbose")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	homeDir = tmpDir
	outputFormat = ""
	verbose = true

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err = initGlobals(cmd)
	require.NoError(t, err)

	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestInitGlobals_OutputFormatFlag(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir, err := os.MkdirTemp("", "slip39-initglobals-format")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	homeDir = tmpDir
	outputFormat = "json"
	verbose = false

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err = initGlobals(cmd)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.DefaultFormat)
}

func TestInitGlobals_WithExistingConfig(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir, err := os.MkdirTemp("", "slip39-initglobals-existing")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	testCfg := config.Defaults()
	testCfg.Home = tmpDir
	testCfg.Logging.Level = "debug"
	configPath := config.Path(tmpDir)
	require.NoError(t, os.MkdirAll(tmpDir, 0o750))
	require.NoError(t, config.Save(testCfg, configPath))

	homeDir = tmpDir
	outputFormat = ""
	verbose = false

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err = initGlobals(cmd)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestInitGlobals_EnvHome(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir, err := os.MkdirTemp("", "slip39-initglobals-env")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	homeDir = ""
	outputFormat = ""
	verbose = false
	t.Setenv(config.EnvHome, tmpDir)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err = initGlobals(cmd)
	require.NoError(t, err)

	assert.Equal(t, tmpDir, cfg.Home)
}

// TestCleanup_LoggerCloseError verifies cleanup doesn't panic when logger.Close() returns an error.
func TestCleanup_LoggerCloseError(t *testing.T) {
	origLogger := logger
	defer func() { logger = origLogger }()

	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")
	testLogger, err := config.NewLogger(config.ParseLogLevel("debug"), logPath)
	require.NoError(t, err)

	require.NoError(t, testLogger.Close())

	logger = testLogger

	assert.NotPanics(t, func() { cleanup() })
}

func TestExecute_VersionCommand(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	origArgs := os.Args
	os.Args = []string{"slip39", "version"}
	defer func() { os.Args = origArgs }()

	err := Execute()
	assert.NoError(t, err)
}
