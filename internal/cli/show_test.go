package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/esquery/internal/store"
	"github.com/roach88/esquery/internal/value"
)

// seedStore creates a database holding docs (name -> canonical JSON body)
// and returns its path plus the fingerprints in insertion order.
func seedStore(t *testing.T, docs ...[2]string) (string, []string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "docs.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	fingerprints := make([]string, 0, len(docs))
	for _, d := range docs {
		body, err := value.UnmarshalMap([]byte(d[1]))
		require.NoError(t, err)
		fp, err := st.Save(context.Background(), d[0], body)
		require.NoError(t, err)
		fingerprints = append(fingerprints, fp)
	}
	return dbPath, fingerprints
}

type showEnvelope struct {
	Status  string         `json:"status"`
	Data    DocumentResult `json:"data"`
	Error   *CLIError      `json:"error"`
	TraceID string         `json:"trace_id"`
}

func TestShow_Canonical(t *testing.T) {
	dbPath, fps := seedStore(t, [2]string{"search", searchCanonical})

	stdout, _, err := executeCommand(t, "show", dbPath, fps[0], "--canonical")
	require.NoError(t, err)
	assert.Equal(t, searchCanonical+"\n", stdout)
}

func TestShow_JSON(t *testing.T) {
	dbPath, fps := seedStore(t,
		[2]string{"first", `{"size":1}`},
		[2]string{"search", searchCanonical},
	)

	stdout, _, err := executeCommand(t, "--format", "json", "show", dbPath, fps[1])
	require.NoError(t, err)

	var resp showEnvelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, fps[1], resp.Data.Fingerprint)
	assert.Equal(t, "search", resp.Data.Name)
	assert.Equal(t, int64(2), resp.Data.Seq)
	assert.JSONEq(t, searchCanonical, string(resp.Data.Document))
}

func TestShow_UnknownFingerprint(t *testing.T) {
	dbPath, _ := seedStore(t, [2]string{"search", searchCanonical})

	stdout, _, err := executeCommand(t, "--format", "json", "show", dbPath, "deadbeef")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp showEnvelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "deadbeef")
}

func TestShow_MissingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")

	_, stderr, err := executeCommand(t, "show", dbPath, "deadbeef")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error ["+ErrCodeDatabase+"]")
	assert.NoFileExists(t, dbPath, "show must not create a database")
}
