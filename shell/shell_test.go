package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/home-lang/den/config"
)

// newTestShell builds a shell with buffered IO, an isolated home directory,
// and a PATH containing only the test's bin directory.
func newTestShell(t *testing.T) (*Shell, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "realcmd"), []byte("#!/bin/sh\n"), 0755))
	t.Setenv("PATH", bin)

	cfg := config.DefaultConfig()
	cfg.Workers = 2
	cfg.ColorPrompt = false

	var out, errOut bytes.Buffer
	sh := NewWithIO(cfg, strings.NewReader(""), &out, &errOut)
	t.Cleanup(sh.Close)
	return sh, &out, &errOut
}

func TestEvalString_Builtin(t *testing.T) {
	sh, out, _ := newTestShell(t)

	status := sh.EvalString("echo hello world")
	assert.Equal(t, 0, status)
	assert.Equal(t, "hello world\n", out.String())
}

func TestEvalString_ExpansionPipeline(t *testing.T) {
	sh, out, _ := newTestShell(t)
	t.Setenv("DEN_TEST_WHO", "den")

	status := sh.EvalString(`echo {a,b} "$DEN_TEST_WHO" '$DEN_TEST_WHO'`)
	assert.Equal(t, 0, status)
	assert.Equal(t, "a b den $DEN_TEST_WHO\n", out.String())
}

func TestEvalString_UnknownCommand(t *testing.T) {
	sh, _, errOut := newTestShell(t)

	status := sh.EvalString("definitely-not-a-command")
	assert.Equal(t, 127, status)
	assert.Contains(t, errOut.String(), "command not found: definitely-not-a-command")
}

func TestEvalString_TypoSuggestion(t *testing.T) {
	sh, _, errOut := newTestShell(t)

	// "realcmd" is on the test PATH; "raelcmd" is one transposition away.
	status := sh.EvalString("raelcmd")
	assert.Equal(t, 127, status)
	assert.Contains(t, errOut.String(), "did you mean")
	assert.Contains(t, errOut.String(), "realcmd")
}

func TestEvalString_ExitStatusAndCode(t *testing.T) {
	sh, _, _ := newTestShell(t)

	_, exit := sh.evalLine("exit 3\n")
	require.NotNil(t, exit)
	assert.Equal(t, 3, exit.code)
}

func TestEvalString_UnterminatedQuote(t *testing.T) {
	sh, _, errOut := newTestShell(t)

	status := sh.EvalString(`echo "oops`)
	assert.Equal(t, 2, status)
	assert.Contains(t, errOut.String(), "unterminated quote")
}

func TestEvalString_EmptyLineKeepsStatus(t *testing.T) {
	sh, _, _ := newTestShell(t)

	sh.lastStatus = 7
	assert.Equal(t, 7, sh.EvalString("   "))
}

func TestEvalString_RecordsHistory(t *testing.T) {
	sh, _, _ := newTestShell(t)

	sh.EvalString("echo one\n")
	sh.EvalString("echo two")
	assert.Equal(t, []string{"echo one", "echo two"}, sh.history.Entries())
}

func TestCompleteMergesBuiltinsAndPath(t *testing.T) {
	sh, _, _ := newTestShell(t)

	matches := sh.Complete("re")
	assert.Contains(t, matches, "rehash", "builtin")
	assert.Contains(t, matches, "realcmd", "PATH executable")
}

func TestBuiltin_CdAndPwd(t *testing.T) {
	sh, out, _ := newTestShell(t)

	dir := t.TempDir()
	t.Chdir(dir)
	start, err := os.Getwd()
	require.NoError(t, err)

	require.Equal(t, 0, sh.EvalString("pwd"))
	assert.Contains(t, out.String(), start)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	require.Equal(t, 0, sh.EvalString("cd sub"))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(start, "sub"), cwd)
}

func TestBuiltin_ExportAndUnset(t *testing.T) {
	sh, _, _ := newTestShell(t)
	t.Setenv("DEN_TEST_EXPORT", "") // registers cleanup with the test runner

	require.Equal(t, 0, sh.EvalString("export DEN_TEST_EXPORT=set"))
	assert.Equal(t, "set", os.Getenv("DEN_TEST_EXPORT"))

	require.Equal(t, 0, sh.EvalString("unset DEN_TEST_EXPORT"))
	_, present := os.LookupEnv("DEN_TEST_EXPORT")
	assert.False(t, present)
}

func TestBuiltin_ExportRejectsBareWord(t *testing.T) {
	sh, _, errOut := newTestShell(t)

	assert.Equal(t, 1, sh.EvalString("export NOVALUE"))
	assert.Contains(t, errOut.String(), "expected NAME=VALUE")
}

func TestBuiltin_History(t *testing.T) {
	sh, out, _ := newTestShell(t)

	sh.EvalString("echo a")
	out.Reset()
	require.Equal(t, 0, sh.EvalString("history"))
	assert.Contains(t, out.String(), "echo a")
}

func TestBuiltin_Which(t *testing.T) {
	sh, out, errOut := newTestShell(t)

	require.Equal(t, 0, sh.EvalString("which cd realcmd"))
	assert.Contains(t, out.String(), "cd: shell builtin")
	assert.Contains(t, out.String(), "realcmd")

	assert.Equal(t, 1, sh.EvalString("which nothere"))
	assert.Contains(t, errOut.String(), "not found: nothere")
}

func TestLookupCommand_PathWithSlash(t *testing.T) {
	sh, _, _ := newTestShell(t)

	exe := filepath.Join(t.TempDir(), "tool")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))

	path, ok := sh.lookupCommand(exe)
	require.True(t, ok)
	assert.Equal(t, exe, path)

	_, ok = sh.lookupCommand(exe + "-missing")
	assert.False(t, ok)
}

func TestRenderColumns(t *testing.T) {
	out := RenderColumns([]string{"aa", "bbb", "c", "dddd", "e"}, 20)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2, "5 words at width 20 with 6-wide columns fit in 2 rows")
	for _, w := range []string{"aa", "bbb", "c", "dddd", "e"} {
		assert.Contains(t, out, w)
	}

	assert.Equal(t, "", RenderColumns(nil, 80))
}
