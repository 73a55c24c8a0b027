package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "startlist", cmd.Use)
	assert.Contains(t, cmd.Long, "start lists")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"seed", "move", "status", "startlist", "history", "validate"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
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

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)

	dateFlag := cmd.PersistentFlags().Lookup("date")
	require.NotNil(t, dateFlag)
	assert.Equal(t, "", dateFlag.DefValue)
}

func TestStoreCommandsHaveDBFlag(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"seed", "move", "status", "startlist", "history"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)

			dbFlag := sub.Flags().Lookup("db")
			require.NotNil(t, dbFlag)
			// --db falls back to the config, so default is empty
			assert.Equal(t, "", dbFlag.DefValue)
		})
	}
}

func TestSeedCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	seedCmd, _, err := cmd.Find([]string{"seed"})
	require.NoError(t, err)

	dryRun := seedCmd.Flags().Lookup("dry-run")
	require.NotNil(t, dryRun)
	assert.Equal(t, "false", dryRun.DefValue)
}

func TestMoveCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	moveCmd, _, err := cmd.Find([]string{"move"})
	require.NoError(t, err)

	require.NotNil(t, moveCmd.Flags().Lookup("participant"))
	require.NotNil(t, moveCmd.Flags().Lookup("to"))
}

func TestMoveCommandRequiresFlags(t *testing.T) {
	_, err := runCLI(t, "move", "--db", tempDB(t), clubEventFile, "--participant", "101")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to")
}

func TestStatusCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	statusCmd, _, err := cmd.Find([]string{"status"})
	require.NoError(t, err)

	require.NotNil(t, statusCmd.Flags().Lookup("wave"))
	closure := statusCmd.Flags().Lookup("closure")
	require.NotNil(t, closure)
	assert.Equal(t, "0s", closure.DefValue)
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
	_, err := runCLI(t, "--format", "invalid", "validate", clubEventFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestDateValidationIntegration(t *testing.T) {
	_, err := runCLI(t, "--date", "14/06/2026", "validate", clubEventFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}
