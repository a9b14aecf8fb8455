package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinstaky/logicroute/internal/routing"
)

func Test_NewWriter_emptyDirResolvesToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	w, err := NewWriter("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".easy-config-logic"), w.Dir)
}

func Test_Save_expressionModeWritesLastConfigAndBackupFile(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir}

	c := routing.NewCompiler()
	require.True(t, c.Parse("A0 = B0 | C0").Ok())

	base, err := w.Save(c.Plan, true)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "last-config.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "config-log.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(base + ".txt")
	assert.NoError(t, err)

	contents, err := os.ReadFile(base + ".txt")
	require.NoError(t, err)
	assert.Contains(t, string(contents), "A0 = B0 | C0")
}

func Test_Save_registerModeSkipsLastConfigButWritesRoundTrippableSnapshot(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir}

	c := routing.NewCompiler()
	require.True(t, c.Parse("A0 = B0 & C0").Ok())

	base, err := w.Save(c.Plan, false)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "last-config.txt"))
	assert.True(t, os.IsNotExist(err))

	restored, err := Restore(base + "-register.txt")
	require.NoError(t, err)
	assert.Equal(t, c.Plan.AndGateSize(), restored.AndGateSize())
	assert.Equal(t, c.Plan.FrontOutputs, restored.FrontOutputs)
}

func Test_Save_appendsMultipleLogLines(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir}
	c := routing.NewCompiler()
	require.True(t, c.Parse("A0 = B0").Ok())

	_, err := w.Save(c.Plan, true)
	require.NoError(t, err)
	_, err = w.Save(c.Plan, false)
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "config-log.txt"))
	require.NoError(t, err)
	lines := 0
	for _, b := range contents {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 2, lines)
}
