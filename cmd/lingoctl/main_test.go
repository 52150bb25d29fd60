package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/lingo-review/internal/config"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/domain/distractor"
	"github.com/phrazzld/lingo-review/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// writeConfig creates a config file pointing at a fresh SQLite database.
func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`server:
  log_level: error
database:
  driver: sqlite
  url: %s
auth:
  jwt_secret: %s
srs:
  first_interval: 2
`, filepath.Join(dir, "lingo.db"), testSecret)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// execute runs lingoctl with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestSchedulePreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantRows [][]string
	}{
		{
			name: "staircase with lapse",
			args: []string{"schedule", "preview", "--start", "2024-01-01", "good", "good", "again"},
			wantRows: [][]string{
				{"0", "-", "0", "2.50", "0", "2024-01-01"},
				{"1", "good", "1", "2.50", "1", "2024-01-02"},
				{"2", "good", "2", "2.50", "6", "2024-01-08"},
				{"3", "again", "0", "2.50", "1", "2024-01-09"},
			},
		},
		{name: "unknown rating", args: []string{"schedule", "preview", "meh"}, wantErr: "invalid rating"},
		{name: "bad start date", args: []string{"schedule", "preview", "--start", "01/02/2024", "good"}, wantErr: "invalid --start"},
		{name: "no ratings", args: []string{"schedule", "preview"}, wantErr: "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := execute(t, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, strings.ToLower(err.Error()), tt.wantErr)
				return
			}
			require.NoError(t, err)

			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, len(tt.wantRows)+1)
			assert.Equal(t, []string{"STEP", "RATING", "REP", "EASE", "INTERVAL", "NEXT", "REVIEW"}, strings.Fields(lines[0]))
			for i, want := range tt.wantRows {
				assert.Equal(t, want, strings.Fields(lines[i+1]))
			}
		})
	}
}

func TestSchedulePreview_UseConfig(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	out, _, err := execute(t, "--config", cfgPath, "schedule", "preview", "--use-config", "--start", "2024-01-01", "good")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-03", "first_interval from the config file applies")
}

func TestMigrateCommands(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)

	out, _, err := execute(t, "--config", cfgPath, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "pending")
	assert.NotContains(t, out, "applied ")

	out, _, err = execute(t, "--config", cfgPath, "migrate", "up")
	require.NoError(t, err)
	assert.Regexp(t, `applied [1-9]\d* migration\(s\)`, out)

	out, _, err = execute(t, "--config", cfgPath, "migrate", "status")
	require.NoError(t, err)
	assert.NotContains(t, out, "pending")

	out, _, err = execute(t, "--config", cfgPath, "migrate", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "rolled back 1 migration")

	out, _, err = execute(t, "--config", cfgPath, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "pending")
}

func TestBankImport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xlsx := filepath.Join(dir, "bank.xlsx")
	outPath := filepath.Join(dir, "bank.json")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"type", "band", "word"},
		{"vocabulary", "simple", "cat"},
		{"vocabulary", "simple", "sun"},
		{"grammar", "expert", "whom"},
		{"grammar", "nonsense", "skip me"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(xlsx))
	require.NoError(t, f.Close())

	_, stderr, err := execute(t, "bank", "import", "--xlsx", xlsx, "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "processed 4 row(s): 3 imported, 1 skipped")

	file, err := os.Open(outPath)
	require.NoError(t, err)
	defer file.Close()

	bank, err := distractor.LoadBank(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "sun"}, bank.Words(domain.ActivityVocabulary, distractor.BandSimple))
	assert.Equal(t, []string{"whom"}, bank.Words(domain.ActivityGrammar, distractor.BandAdvanced))
}

func TestBankImport_RequiresXLSX(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "bank", "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xlsx" not set`)
}

func TestTokenIssue(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	learnerID := "6f1c2a0e-8f57-4c1b-9d0a-3c4e5f6a7b8c"

	out, _, err := execute(t, "--config", cfgPath, "token", "issue", "--learner", learnerID, "--ttl", "1h")
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	claims, err := tokens.ValidateToken(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, learnerID, claims.LearnerID.String())

	_, _, err = execute(t, "--config", cfgPath, "token", "issue", "--learner", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --learner")
}
