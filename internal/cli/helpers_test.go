package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDate = "2026-06-01"

var clubEventFile = filepath.Join("testdata", "club_tt.yaml")

// runCLI executes the root command with args and returns stdout.
// Log records and verbose output go to a separate buffer.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// tempDB returns a database path inside a per-test temp dir.
func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "startlist.db")
}

// seedClub seeds the club event into db and fails the test on error.
func seedClub(t *testing.T, db string) {
	t.Helper()
	_, err := runCLI(t, "--date", testDate, "seed", "--db", db, clubEventFile)
	require.NoError(t, err)
}

// decodeResponse parses a JSON CLIResponse and decodes its data into v.
func decodeResponse(t *testing.T, output string, v any) CLIResponse {
	t.Helper()
	var raw struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &raw), "output: %s", output)
	if v != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, v))
	}
	return CLIResponse{Status: raw.Status, Error: raw.Error}
}
