package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slip39kit/slip39/internal/config"
	"github.com/slip39kit/slip39/internal/output"
)

func TestNewCommandContext(t *testing.T) {
	tests := []struct {
		name   string
		config *config.Config
		log    *config.Logger
		fmt    *output.Formatter
	}{
		{
			name:   "with all values",
			config: config.Defaults(),
			log:    config.NullLogger(),
			fmt:    output.NewFormatter(output.FormatText, nil),
		},
		{name: "with nil config", config: nil, log: config.NullLogger(), fmt: output.NewFormatter(output.FormatText, nil)},
		{name: "with nil logger", config: config.Defaults(), log: nil, fmt: output.NewFormatter(output.FormatText, nil)},
		{name: "with nil formatter", config: config.Defaults(), log: config.NullLogger(), fmt: nil},
		{name: "all nil", config: nil, log: nil, fmt: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := NewCommandContext(tc.config, tc.log, tc.fmt)
			require.NotNil(t, ctx)

			assert.Equal(t, tc.config, ctx.Cfg)
			assert.Equal(t, tc.log, ctx.Log)
			assert.Equal(t, tc.fmt, ctx.Fmt)
		})
	}
}

func TestSetCmdContext_GetCmdContext_Roundtrip(t *testing.T) {
	testCfg := config.Defaults()
	testLogger := config.NullLogger()
	testFormatter := output.NewFormatter(output.FormatText, nil)

	cc := NewCommandContext(testCfg, testLogger, testFormatter)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	SetCmdContext(cmd, cc)

	retrieved := GetCmdContext(cmd)
	require.NotNil(t, retrieved)

	assert.Equal(t, cc, retrieved)
	assert.Equal(t, testCfg, retrieved.Cfg)
	assert.Equal(t, testLogger, retrieved.Log)
	assert.Equal(t, testFormatter, retrieved.Fmt)
}

func TestGetCmdContext_NilContext(t *testing.T) {
	cmd := &cobra.Command{}

	ctx := GetCmdContext(cmd)
	assert.Nil(t, ctx)
}

func TestGetCmdContext_WrongContextType(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(cmd.Context())

	ctx := GetCmdContext(cmd)
	assert.Nil(t, ctx)
}

// mockFormatProvider implements FormatProvider for testing.
type mockFormatProvider struct{ format output.Format }

func (m *mockFormatProvider) Format() output.Format { return m.format }

var _ FormatProvider = (*mockFormatProvider)(nil)
