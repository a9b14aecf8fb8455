package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "limits.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_Load_unsetFieldsStayZero(t *testing.T) {
	path := writeTOML(t, `max_or_gates = 4`)
	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, l.MaxOrGates)
	assert.Equal(t, 0, l.MaxAndGates)
}

func Test_Load_rejectsOverrideAboveHardwareMax(t *testing.T) {
	path := writeTOML(t, `max_clocks = 99`)
	_, err := Load(path)
	assert.Error(t, err)
}

func Test_Load_rejectsNegativeOverride(t *testing.T) {
	path := writeTOML(t, `max_dividers = -1`)
	_, err := Load(path)
	assert.Error(t, err)
}

func Test_Default_matchesHardwareMaximums(t *testing.T) {
	def := Default()
	assert.NoError(t, def.Validate())
	assert.Equal(t, 16, def.MaxOrGates)
	assert.Equal(t, 4, def.MaxClocks)
}

func Test_Validate_acceptsShrunkLimits(t *testing.T) {
	l := Limits{MaxOrGates: 2, MaxAndGates: 2, MaxDividers: 1, MaxDividerOrGates: 1, MaxDividerAndGates: 1, MaxClocks: 1}
	assert.NoError(t, l.Validate())
}
