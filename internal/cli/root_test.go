package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/esquery/internal/testutil"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "esq", cmd.Use)
	assert.Contains(t, cmd.Long, "query documents")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"render", "show", "list"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
			assert.True(t, subCmd.SilenceUsage)
			assert.True(t, subCmd.SilenceErrors)
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestRenderCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	renderCmd, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)

	paramFlag := renderCmd.Flags().Lookup("param")
	require.NotNil(t, paramFlag)
	assert.Equal(t, "p", paramFlag.Shorthand)
	assert.Equal(t, "stringArray", paramFlag.Value.Type())

	wrapFlag := renderCmd.Flags().Lookup("wrap")
	require.NotNil(t, wrapFlag)
	assert.Equal(t, "", wrapFlag.DefValue)

	canonicalFlag := renderCmd.Flags().Lookup("canonical")
	require.NotNil(t, canonicalFlag)
	assert.Equal(t, "false", canonicalFlag.DefValue)

	saveFlag := renderCmd.Flags().Lookup("save")
	require.NotNil(t, saveFlag)
	assert.Equal(t, "", saveFlag.DefValue)
}

func TestShowCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	showCmd, _, err := cmd.Find([]string{"show"})
	require.NoError(t, err)

	canonicalFlag := showCmd.Flags().Lookup("canonical")
	require.NotNil(t, canonicalFlag)
	assert.Equal(t, "false", canonicalFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, _, err := executeCommand(t, "--format", "invalid", "render", "testdata/search.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestTraceIDOverride(t *testing.T) {
	gen := testutil.NewSequenceTraceID()
	opts := &RootOptions{Format: "json", NewTraceID: gen.Generate}
	root := &cobra.Command{
		Use: "esq",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.TraceID = opts.traceID()
		},
	}
	root.AddCommand(NewRenderCommand(opts))

	for _, want := range []string{"trace-1", "trace-2"} {
		stdout := &bytes.Buffer{}
		root.SetOut(stdout)
		root.SetArgs([]string{"render", "testdata/search.yaml"})
		require.NoError(t, root.Execute())
		assert.Contains(t, stdout.String(), `"trace_id":"`+want+`"`)
	}
}

func TestSetupLogging(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"verbose_enables_debug", true, true},
		{"quiet_by_default", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			setupLogging(buf, tt.verbose)

			slog.Debug("template compiled", "name", "search")
			slog.Warn("slow render", "ms", 12)

			if tt.wantDebug {
				assert.Contains(t, buf.String(), "template compiled")
			} else {
				assert.NotContains(t, buf.String(), "template compiled")
			}
			assert.Contains(t, buf.String(), "slow render")
		})
	}
}

func TestVerboseRenderLogsToStderr(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	stdout, stderr, err := executeCommand(t, "-v", "render", "testdata/search.yaml", "--canonical")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", stdout)
	assert.Contains(t, stderr, "Loaded template search")
	assert.Contains(t, stderr, "template compiled")
}
