package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "chatstate", cmd.Use)
	assert.Contains(t, cmd.Long, "account data")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"migrate"},
		{"queries"},
		{"get", "state"},
		{"get", "stripped-state"},
		{"get", "account-data"},
		{"get", "presence"},
		{"get", "member"},
		{"get", "profile"},
		{"get", "room"},
		{"get", "receipt"},
		{"set", "account-data"},
		{"remove-room"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
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

	defaults := map[string]string{
		"driver":     "sqlite3",
		"dsn":        "chatstate.db",
		"codec":      "json",
		"log-level":  "info",
		"log-format": "text",
		"config":     "",
	}
	for name, want := range defaults {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, want, flag.DefValue, name)
	}
}

func TestGetCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	receiptCmd, _, err := cmd.Find([]string{"get", "receipt"})
	require.NoError(t, err)
	typeFlag := receiptCmd.Flags().Lookup("type")
	require.NotNil(t, typeFlag)
	assert.Equal(t, "m.read", typeFlag.DefValue)

	for _, name := range []string{"member", "room"} {
		sub, _, err := cmd.Find([]string{"get", name})
		require.NoError(t, err)
		assert.NotNil(t, sub.Flags().Lookup("stripped"), name)
	}

	accountCmd, _, err := cmd.Find([]string{"get", "account-data"})
	require.NoError(t, err)
	assert.NotNil(t, accountCmd.Flags().Lookup("room"))
}

func TestInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"queries", "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInvalidConfiguration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"migrate", "--driver", "mysql", "--dsn", filepath.Join(t.TempDir(), "x.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
