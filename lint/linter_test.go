package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmdr/scripts/check-style-tokens/locator"
	"cmdr/scripts/check-style-tokens/scanner"
)

func newLinter(t *testing.T) *Linter {
	t.Helper()
	l, err := New(DefaultAccessors(), nil)
	require.NoError(t, err)
	return l
}

func checkLine(t *testing.T, text string) []Violation {
	t.Helper()
	return newLinter(t).CheckLine(scanner.Line{Text: text, Number: 7, Path: "/repo/w.js", RelPath: "w.js"})
}

func ruleIDs(violations []Violation) []string {
	var ids []string
	for _, v := range violations {
		ids = append(ids, v.RuleID)
	}
	return ids
}

func memWorkspace(t *testing.T, files map[string]string) *locator.Workspace {
	t.Helper()
	ws := locator.NewWorkspace("/repo", memfs.New())
	for path, content := range files {
		require.NoError(t, util.WriteFile(ws.FS, path, []byte(content), 0o644))
	}
	return ws
}

func TestCheckLine_AccessorFallbackIsAllowed(t *testing.T) {
	lines := []string{
		"getToken('token', '#abc123')",
		"const c = readToken('accent', '#abc123');",
		"el.style.color = tokenOr('accent', 'rgba(0, 0, 0, 0.4)');",
		"ctx.fillStyle = cssVar('--accent', '#fff');",
	}
	for _, line := range lines {
		assert.Empty(t, checkLine(t, line), line)
	}
}

func TestCheckLine_HardcodedColorWithoutAccessor(t *testing.T) {
	violations := checkLine(t, "el.style.color = '#abc123';")

	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, RuleHardcodedColor, v.RuleID)
	assert.Equal(t, "#abc123", v.Match)
	assert.Equal(t, 7, v.Line)
	assert.Equal(t, 19, v.Column)
	assert.Equal(t, "w.js", v.RelPath)
	assert.Contains(t, v.Message, "column 19")
}

func TestCheckLine_VarInStyleAlwaysReported(t *testing.T) {
	tests := []string{
		"el.style.background = 'var(--accent)';",
		"el.style.background = 'var(--accent)'; const c = getToken('accent', '#fff');",
		"getToken('x', '#fff'); el.style.background = 'var(--accent)';",
	}
	for _, line := range tests {
		violations := checkLine(t, line)
		assert.Equal(t, []string{RuleVarInStyle}, ruleIDs(violations), line)
	}
}

func TestCheckLine_VarInPlainString(t *testing.T) {
	violations := checkLine(t, "label.dataset.color = 'var(--accent)';")
	assert.Equal(t, []string{RuleVarInString}, ruleIDs(violations))
}

func TestCheckLine_SameLiteralInsideAndOutsideAccessor(t *testing.T) {
	violations := checkLine(t, "el.style.color = getToken('accent', '#abc123') || '#abc123';")

	require.Len(t, violations, 1)
	assert.Equal(t, RuleHardcodedColor, violations[0].RuleID)
	assert.Equal(t, 52, violations[0].Column)
}

func TestCheckLine_TwoUnprotectedLiterals(t *testing.T) {
	violations := checkLine(t, "grad.addColorStop(0, '#112233'); grad.addColorStop(1, '#445566');")

	require.Len(t, violations, 2)
	assert.Equal(t, violations[0].Line, violations[1].Line)
	assert.Equal(t, "#112233", violations[0].Match)
	assert.Equal(t, "#445566", violations[1].Match)
	assert.NotEqual(t, violations[0].Message, violations[1].Message)
	assert.Contains(t, violations[0].Message, "column 23")
	assert.Contains(t, violations[1].Message, "column 56")
}

func TestCheckLine_RuleOrderWithinLine(t *testing.T) {
	// The css-var-in-style hit comes first on the line but hardcoded-color is evaluated first.
	violations := checkLine(t, "el.style.color = 'var(--a)'; x = '#fff';")
	assert.Equal(t, []string{RuleHardcodedColor, RuleVarInStyle}, ruleIDs(violations))
}

func TestCheckLine_CleanLine(t *testing.T) {
	assert.Empty(t, checkLine(t, "const total = price * quantity;"))
	assert.Empty(t, checkLine(t, ""))
}

func TestRun_DiscoveryOrder(t *testing.T) {
	ws := memWorkspace(t, map[string]string{
		"topics/b/interactive.js": "a = '#fff';\n// '#000'\nb = 'var(--x)';\n",
		"topics/a/interactive.js": "el.style.color = 'var(--y)';\n\nc = getToken('k', '#123');\nd = 'rgb(1,2,3)';\n",
	})

	result, err := newLinter(t).Run(ws, locator.Patterns)
	require.NoError(t, err)

	assert.Equal(t, []string{"/repo/topics/a/interactive.js", "/repo/topics/b/interactive.js"}, result.Files)

	var got []string
	for _, v := range result.Violations {
		got = append(got, v.String())
	}
	require.Len(t, got, 4)
	assert.Contains(t, got[0], "topics/a/interactive.js:1  css-var-in-style  ")
	assert.Contains(t, got[1], "topics/a/interactive.js:4  hardcoded-color  ")
	assert.Contains(t, got[2], "topics/b/interactive.js:1  hardcoded-color  ")
	assert.Contains(t, got[3], "topics/b/interactive.js:3  css-var-in-string  ")
	assert.Equal(t, 1, result.ExitCode())
	assert.Equal(t, map[string]int{RuleVarInStyle: 1, RuleHardcodedColor: 2, RuleVarInString: 1}, result.CountByRule())
}

func TestRun_CommentLinesSuppressed(t *testing.T) {
	ws := memWorkspace(t, map[string]string{
		"topics/a/interactive.js": "// '#fff'\n/* #000 */\n * #123\n<!-- #456 -->\n",
	})

	result, err := newLinter(t).Run(ws, locator.Patterns)
	require.NoError(t, err)
	assert.False(t, result.HasViolations())
	assert.Equal(t, 0, result.ExitCode())
}

func TestRun_CleanTree(t *testing.T) {
	ws := memWorkspace(t, map[string]string{
		"topics/a/interactive.js":      "// only a comment with #fff\n",
		"topics/b/interactive.html":    "<script>\nconst c = getToken('accent', '#336699');\n</script>\n",
		"topics/c/widgets/slider.js":   "knob.style.color = readToken('knob', 'hsl(10, 50%, 50%)');\n",
		"topics/c/widgets/ignored.css": "a { color: #fff; }\n",
	})

	result, err := newLinter(t).Run(ws, locator.Patterns)
	require.NoError(t, err)
	assert.Len(t, result.Files, 3)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 0, result.Count())
}

func TestRun_Idempotent(t *testing.T) {
	ws := memWorkspace(t, map[string]string{
		"topics/a/interactive.js": "a = '#fff'; b = '#000';\n",
		"topics/b/interactive.js": "el.style.color = 'var(--z)';\n",
	})
	l := newLinter(t)

	first, err := l.Run(ws, locator.Patterns)
	require.NoError(t, err)
	second, err := l.Run(ws, locator.Patterns)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_InvalidFileAborts(t *testing.T) {
	ws := memWorkspace(t, map[string]string{
		"topics/a/interactive.js": "a = '#fff';\n",
		"topics/b/interactive.js": "\xff\xfe\n",
	})

	result, err := newLinter(t).Run(ws, locator.Patterns)
	require.Error(t, err)
	assert.ErrorIs(t, err, scanner.ErrInvalidEncoding)
	assert.Nil(t, result)
}

func TestRun_UnreadableFileOnDisk(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files regardless of permissions")
	}
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "topics", "a")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "interactive.js")
	require.NoError(t, os.WriteFile(path, []byte("a = '#fff';\n"), 0o000))

	ws, err := locator.OpenWorkspace(tmp)
	require.NoError(t, err)

	_, err = newLinter(t).Run(ws, locator.Patterns)
	assert.Error(t, err)
}

func TestNew_InvalidAccessor(t *testing.T) {
	_, err := New([]string{"not valid"}, nil)
	assert.Error(t, err)
}
