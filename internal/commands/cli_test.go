package commands_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/ledger"
)

var (
	chatFixture   = filepath.Join("..", "..", "testdata", "expenses_chat.txt")
	noisyFixture  = filepath.Join("..", "..", "testdata", "noisy_chat.txt")
	ledgerFixture = filepath.Join("..", "..", "testdata", "ledger.csv")
	namesFixture  = filepath.Join("..", "..", "testdata", "categories.csv")
)

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}

func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runTally(t, "init", dir, "--name", "Sam")
	require.NoError(t, err, out)
	return dir
}

func TestParse_Fixture(t *testing.T) {
	stdout, _, err := runTallyIO(t, "", "parse", chatFixture, "--repo", t.TempDir())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 40, "header + 39 transactions")
	assert.Equal(t, ledger.Header, lines[0])
	assert.Equal(t, "27/10/2025,Tng,50", lines[1])
	assert.Equal(t, "02/01/2026,F,15", lines[len(lines)-1])
}

func TestParse_Stdin(t *testing.T) {
	data, err := os.ReadFile(noisyFixture)
	require.NoError(t, err)

	stdout, _, err := runTallyIO(t, string(data), "parse", "-", "--repo", t.TempDir())
	require.NoError(t, err)

	txns, err := ledger.ReadTransactions(strings.NewReader(stdout))
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "Bus Pass", txns[1].Category)
}

func TestParse_OutFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ledger.csv")
	stdout, _, err := runTallyIO(t, "", "parse", chatFixture, "--out", out, "--repo", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, stdout)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	txns, err := ledger.ReadTransactions(f)
	require.NoError(t, err)
	assert.Len(t, txns, 39)
}

func TestParse_OutFileWriteError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	_, stderr, err := runTallyIO(t, "", "parse", chatFixture, "--out", "/dev/full", "--repo", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, stderr, "writing ledger")
	assert.NotContains(t, stderr, "ledger written")
}

func TestParse_OutFileMissingDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "ledger.csv")
	_, stderr, err := runTallyIO(t, "", "parse", chatFixture, "--out", out, "--repo", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, stderr, "creating")
}

func TestParse_LedgerInput(t *testing.T) {
	stdout, _, err := runTallyIO(t, "", "parse", ledgerFixture, "--repo", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, `"Bus Pass, monthly"`)
}

func TestParse_FallbackYearFlag(t *testing.T) {
	stdout, _, err := runTallyIO(t, "", "parse", chatFixture, "--fallback-year", "2030", "--repo", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "02/01/2030,F,15")
}

func TestParse_FallbackYearEnv(t *testing.T) {
	cmd := exec.Command(binaryPath, "parse", chatFixture, "--repo", t.TempDir())
	cmd.Env = tallyEnv("TALLY_FALLBACK_YEAR=2031")
	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "02/01/2031,F,15")
}

func TestParse_FallbackYearConfig(t *testing.T) {
	dir := initProject(t)
	cfgPath := filepath.Join(dir, "tally.yaml")
	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	updated := strings.Replace(string(data), "fallback_year: 2026", "fallback_year: 2032", 1)
	require.NoError(t, os.WriteFile(cfgPath, []byte(updated), 0o644))

	stdout, _, err := runTallyIO(t, "", "parse", chatFixture, "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "02/01/2032,F,15")
}

func TestParse_BadYearPolicy(t *testing.T) {
	_, stderr, err := runTallyIO(t, "", "parse", chatFixture, "--year-policy", "wall-clock", "--repo", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, stderr, "unknown year policy")
}

func TestParse_MissingFile(t *testing.T) {
	_, _, err := runTallyIO(t, "", "parse", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestParse_DebugLogsSkippedLines(t *testing.T) {
	stdout, stderr, err := runTallyIO(t, "", "parse", noisyFixture,
		"--log-level", "debug", "--log-format", "json", "--repo", t.TempDir())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, ledger.Header), "logs stay off stdout")
	assert.Contains(t, stderr, `"skipped":5`)
	assert.Contains(t, stderr, `"transactions":3`)
}

func TestDebugLogsFromInitAndSummary(t *testing.T) {
	dir := t.TempDir()
	_, stderr, err := runTallyIO(t, "", "init", dir, "--log-level", "debug", "--log-format", "json")
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "project scaffold written")

	_, stderr, err = runTallyIO(t, "", "summary", chatFixture,
		"--log-level", "debug", "--log-format", "json", "--repo", dir)
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "categories loaded")
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := runTallyIO(t, "", "parse", chatFixture, "--log-level", "loud", "--repo", t.TempDir())
	require.Error(t, err)
}

func TestSummary_Text(t *testing.T) {
	stdout, _, err := runTallyIO(t, "", "summary", chatFixture, "--repo", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, stdout, "Total Expenses")
	assert.Contains(t, stdout, "$1260")
	assert.Contains(t, stdout, "Average per Transaction")
	assert.Contains(t, stdout, "$32.31")
	assert.Contains(t, stdout, "Food")
	assert.Contains(t, stdout, "11/2025")
	assert.NotContains(t, stdout, "\x1b[", "no color when piped")
}

func TestSummary_Limit(t *testing.T) {
	stdout, _, err := runTallyIO(t, "", "summary", chatFixture, "--limit", "3", "--repo", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "… 36 more")
}

func TestSummary_JSON(t *testing.T) {
	stdout, _, err := runTallyIO(t, "", "summary", chatFixture, "--format", "json", "--repo", t.TempDir())
	require.NoError(t, err)

	var got struct {
		Stats struct {
			Total int64 `json:"total"`
			Count int   `json:"count"`
		} `json:"stats"`
		Mean       string `json:"mean"`
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, int64(1260), got.Stats.Total)
	assert.Equal(t, 39, got.Stats.Count)
	assert.Equal(t, "32.31", got.Mean)
	require.NotEmpty(t, got.Categories)
	assert.Equal(t, "Food", got.Categories[0].Name)
}

func TestSummary_ProjectCategories(t *testing.T) {
	dir := initProject(t)
	copyFile(t, namesFixture, filepath.Join(dir, "categories.csv"))

	stdout, _, err := runTallyIO(t, "", "summary", chatFixture, "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Coffee & Snacks")
	assert.Contains(t, stdout, "Sam · Expense Tracker")
}

func TestSummary_Empty(t *testing.T) {
	stdout, _, err := runTallyIO(t, "no expenses here\n", "summary", "-", "--repo", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "no data")
	assert.Contains(t, stdout, "No transactions found.")
}

func TestSummary_UnknownFormat(t *testing.T) {
	_, stderr, err := runTallyIO(t, "", "summary", chatFixture, "--format", "xml", "--repo", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, stderr, "unknown output format")
}

type summaryTotals struct {
	Stats struct {
		Total int64 `json:"total"`
		Count int   `json:"count"`
	} `json:"stats"`
}

func summaryJSON(t *testing.T, args ...string) summaryTotals {
	t.Helper()
	stdout, stderr, err := runTallyIO(t, "", append([]string{"summary", "--format", "json"}, args...)...)
	require.NoError(t, err, stderr)
	var got summaryTotals
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	return got
}

func TestSummary_ProjectLedger(t *testing.T) {
	dir := initProject(t)
	copyFile(t, chatFixture, filepath.Join(dir, "import", "expenses_chat.txt"))
	_, _, err := runTallyIO(t, "", "import", "--repo", dir, "--mark-processed")
	require.NoError(t, err)

	stdout, stderr, err := runTallyIO(t, "", "summary", "--repo", dir)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "$1260")
	assert.Contains(t, stdout, "ledger.csv")

	got := summaryJSON(t, "--repo", dir)
	assert.Equal(t, 39, got.Stats.Count)
}

func TestSummary_ProjectLedgerMissing(t *testing.T) {
	dir := initProject(t)
	_, stderr, err := runTallyIO(t, "", "summary", "--repo", dir)
	require.Error(t, err)
	assert.Contains(t, stderr, "ledger.csv not found")
}

func TestSummary_Month(t *testing.T) {
	got := summaryJSON(t, chatFixture, "--month", "11/2025", "--repo", t.TempDir())
	assert.Equal(t, int64(705), got.Stats.Total)

	stdout, _, err := runTallyIO(t, "", "summary", chatFixture, "--month", "11/2025", "--repo", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "$705")
	assert.NotContains(t, stdout, "10/2025")
}

func TestSummary_Since(t *testing.T) {
	got := summaryJSON(t, chatFixture, "--since", "01/12/2025", "--repo", t.TempDir())
	assert.Equal(t, int64(470), got.Stats.Total)
}

func TestSummary_BadWindow(t *testing.T) {
	_, stderr, err := runTallyIO(t, "", "summary", chatFixture, "--month", "2025-11", "--repo", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, stderr, "parsing month")

	_, stderr, err = runTallyIO(t, "", "summary", chatFixture, "--since", "yesterday", "--repo", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, stderr, "parsing since")
}

func TestExplain_Noisy(t *testing.T) {
	stdout, _, err := runTallyIO(t, "", "explain", noisyFixture)
	require.NoError(t, err)

	assert.Contains(t, stdout, "3 matched, 5 skipped")
	assert.Contains(t, stdout, "no date or content")
	assert.Contains(t, stdout, "no content")
	assert.Contains(t, stdout, "Bus Pass 120")
}

func TestExplain_SkippedOnly(t *testing.T) {
	stdout, _, err := runTallyIO(t, "", "explain", noisyFixture, "--skipped")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "Bus Pass")
	assert.Contains(t, stdout, "Sam: F-99")
	assert.Contains(t, stdout, "3 matched, 5 skipped")
}

func TestImport_MarkProcessed(t *testing.T) {
	dir := initProject(t)
	copyFile(t, chatFixture, filepath.Join(dir, "import", "expenses_chat.txt"))
	copyFile(t, ledgerFixture, filepath.Join(dir, "import", "ledger.csv"))

	stdout, _, err := runTallyIO(t, "", "import", "--repo", dir, "--mark-processed")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 43 transactions ($1465) from 2 files")
	assert.Contains(t, stdout, "Top category: Food ($435)")

	txns, err := ledger.Load(dir)
	require.NoError(t, err)
	assert.Len(t, txns, 43)

	processed, err := os.ReadDir(filepath.Join(dir, "import", "processed"))
	require.NoError(t, err)
	var names []string
	for _, e := range processed {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "expenses_chat.txt")
	assert.Contains(t, names, "ledger.csv")

	_, err = os.Stat(filepath.Join(dir, "import", "expenses_chat.txt"))
	assert.True(t, os.IsNotExist(err), "input should have moved")

	stdout, _, err = runTallyIO(t, "", "import", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No files to import.")
}

func TestImport_LeavesInputsWithoutFlag(t *testing.T) {
	dir := initProject(t)
	copyFile(t, chatFixture, filepath.Join(dir, "import", "expenses_chat.txt"))

	_, _, err := runTallyIO(t, "", "import", "--repo", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "import", "expenses_chat.txt"))
	assert.NoError(t, err)
}

func TestImport_LogFailureReportsLedgerState(t *testing.T) {
	dir := initProject(t)
	copyFile(t, chatFixture, filepath.Join(dir, "import", "expenses_chat.txt"))
	logPath := filepath.Join(dir, "logs", "import-log.csv")
	require.NoError(t, os.MkdirAll(logPath, 0o755))

	_, stderr, err := runTallyIO(t, "", "import", "--repo", dir, "--mark-processed")
	require.Error(t, err)
	assert.Contains(t, stderr, "ledger.csv already holds the 39 imported transactions")
	assert.Contains(t, stderr, "do not re-run import")

	txns, err := ledger.Load(dir)
	require.NoError(t, err)
	assert.Len(t, txns, 39)

	_, err = os.Stat(filepath.Join(dir, "import", "expenses_chat.txt"))
	assert.NoError(t, err, "input is not moved after a failed import")
}

func TestHistory(t *testing.T) {
	dir := initProject(t)

	stdout, _, err := runTallyIO(t, "", "history", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No imports recorded.")

	copyFile(t, chatFixture, filepath.Join(dir, "import", "expenses_chat.txt"))
	_, _, err = runTallyIO(t, "", "import", "--repo", dir, "--mark-processed")
	require.NoError(t, err)

	stdout, _, err = runTallyIO(t, "", "history", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "expenses_chat.txt")
	assert.Contains(t, stdout, "1 imports, 39 transactions, $1260")
}

func TestVersion(t *testing.T) {
	out, err := runTally(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "tally version")
	assert.Contains(t, out, "commit:")
}

func TestImport_Commit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	out, err := runTally(t, "init", dir, "--name", "Sam", "--git")
	require.NoError(t, err, out)
	copyFile(t, chatFixture, filepath.Join(dir, "import", "expenses_chat.txt"))

	stdout, stderr, err := runTallyIO(t, "", "import", "--repo", dir, "--commit")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Committed")

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	msg, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "import: 39 transactions from 1 files")

	status := exec.Command("git", "status", "--porcelain")
	status.Dir = dir
	pending, err := status.Output()
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(pending)), "import leaves a clean tree")
}

func TestImport_CommitRequiresGit(t *testing.T) {
	dir := initProject(t)
	cmd := exec.Command(binaryPath, "import", "--repo", dir, "--commit")
	cmd.Env = tallyEnv("PATH=" + t.TempDir())
	out, err := cmd.CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(out), "git not found on PATH")
}

func TestImport_CommitRequiresRepo(t *testing.T) {
	dir := initProject(t)
	_, stderr, err := runTallyIO(t, "", "import", "--repo", dir, "--commit")
	require.Error(t, err)
	assert.Contains(t, stderr, "not a git repository")
}
