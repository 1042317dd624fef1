package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aleister1102/gitsentry/internal/gitcfg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRuleset(t *testing.T, prohibited, allowed []string) *Ruleset {
	t.Helper()
	rules, err := NewRuleset(prohibited, allowed)
	require.NoError(t, err)
	return rules
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestEngine_ScanFile(t *testing.T) {
	tests := []struct {
		name      string
		patterns  []string
		content   string
		wantCount int
	}{
		{
			name:      "prohibited pattern in assignment",
			patterns:  []string{"SECRETKEY"},
			content:   "user=jdoe\ntoken=SECRETKEY123\n",
			wantCount: 1,
		},
		{
			name:      "clean file",
			patterns:  []string{"SECRETKEY"},
			content:   "nothing to see here\n",
			wantCount: 0,
		},
		{
			name:      "word boundary honored",
			patterns:  []string{"KEY"},
			content:   "MONKEY business\n",
			wantCount: 0,
		},
		{
			name:      "word boundary matches standalone word",
			patterns:  []string{"KEY"},
			content:   "the KEY is under the mat\n",
			wantCount: 1,
		},
		{
			name:      "multiple matching lines preserve order",
			patterns:  []string{"SECRETKEY"},
			content:   "a=SECRETKEY\nclean\nb=SECRETKEY\n",
			wantCount: 2,
		},
		{
			name:      "case sensitive",
			patterns:  []string{"SECRETKEY"},
			content:   "token=secretkey\n",
			wantCount: 0,
		},
		{
			name:      "pattern followed by word characters still matches",
			patterns:  []string{"SECRETKEY"},
			content:   "token=SECRETKEY123\n",
			wantCount: 1,
		},
		{
			name:      "escaped literal with non-word edges at end of line",
			patterns:  []string{gitcfg.EscapeLiteral("ab+cd/ef==")},
			content:   "aws_secret_access_key = ab+cd/ef==\n",
			wantCount: 1,
		},
		{
			name:      "escaped literal with non-word edges mid-line",
			patterns:  []string{gitcfg.EscapeLiteral("ab+cd/ef==")},
			content:   "export KEY=ab+cd/ef== # staging\n",
			wantCount: 1,
		},
		{
			name:      "escaped literal at start of line",
			patterns:  []string{gitcfg.EscapeLiteral("ab+cd/ef==")},
			content:   "ab+cd/ef==\n",
			wantCount: 1,
		},
		{
			name:      "escaped literal glued inside a word does not match",
			patterns:  []string{gitcfg.EscapeLiteral("ab+cd/ef==")},
			content:   "prefab+cd/ef==\n",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "subject.txt", tt.content)
			engine := NewEngine(mustRuleset(t, tt.patterns, nil), zerolog.Nop())

			report, err := engine.ScanFile(path)
			require.NoError(t, err)
			assert.Len(t, report, tt.wantCount)

			for i := 1; i < len(report); i++ {
				assert.Less(t, report[i-1].LineNumber, report[i].LineNumber, "matches must stay ordered")
			}
		})
	}
}

func TestEngine_ScanFile_ReportsLocationAndLine(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.ini", "name=x\ntoken=SECRETKEY123\n")
	engine := NewEngine(mustRuleset(t, []string{"SECRETKEY"}, nil), zerolog.Nop())

	report, err := engine.ScanFile(path)
	require.NoError(t, err)
	require.Len(t, report, 1)

	assert.Equal(t, path, report[0].Location)
	assert.Equal(t, 2, report[0].LineNumber)
	assert.Equal(t, "token=SECRETKEY123", report[0].Line)
	assert.Equal(t, path+":2:token=SECRETKEY123", report[0].String())
}

func TestEngine_ScanReader_Stream(t *testing.T) {
	engine := NewEngine(mustRuleset(t, []string{"SECRETKEY"}, nil), zerolog.Nop())

	report, err := engine.ScanReader(StreamLocation, strings.NewReader("diff --git a/x b/x\n+token=SECRETKEY123\n"))
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, StreamLocation, report[0].Location)
}

func TestEngine_ScanPaths_DirectoryRequiresRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nested/leaf.txt", "token=SECRETKEY123\n")
	engine := NewEngine(mustRuleset(t, []string{"SECRETKEY"}, nil), zerolog.Nop())

	_, err := engine.ScanPaths([]string{dir}, false)
	assert.Error(t, err, "directory without recursive must be refused")

	report, err := engine.ScanPaths([]string{dir}, true)
	require.NoError(t, err)
	assert.Len(t, report, 1)
}

func TestEngine_ScanPaths_SkipsGitMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".git/objects/blob", "token=SECRETKEY123\n")
	writeFile(t, dir, "app.conf", "clean\n")
	engine := NewEngine(mustRuleset(t, []string{"SECRETKEY"}, nil), zerolog.Nop())

	report, err := engine.ScanPaths([]string{dir}, true)
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestEngine_ScanPaths_SkipsMissingFiles(t *testing.T) {
	engine := NewEngine(mustRuleset(t, []string{"SECRETKEY"}, nil), zerolog.Nop())

	report, err := engine.ScanPaths([]string{filepath.Join(t.TempDir(), "gone.txt")}, false)
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestEngine_ScanContent_SkipsBinary(t *testing.T) {
	engine := NewEngine(mustRuleset(t, []string{"SECRETKEY"}, nil), zerolog.Nop())

	content := append([]byte{0x7f, 'E', 'L', 'F', 0x00}, []byte("SECRETKEY")...)
	report, err := engine.ScanContent("bin", content)
	require.NoError(t, err)
	assert.Empty(t, report)
}
