package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Summary_includesPoolOccupancy(t *testing.T) {
	c := NewCompiler()
	require.True(t, c.Parse("A0 = B0 | C0").Ok())

	s := c.Plan.Summary()
	assert.Contains(t, s, "or gates")
	assert.Contains(t, s, "1")
}

func Test_Summary_listsOnlyUsedFrontPorts(t *testing.T) {
	c := NewCompiler()
	require.True(t, c.Parse("A0 = B0 | C0").Ok())

	s := c.Plan.Summary()
	assert.Contains(t, s, "A0")
	assert.Contains(t, s, "B0")
	assert.NotContains(t, s, "C15")
}

func Test_Summary_omitsFrontPortTableWhenNoPortsUsed(t *testing.T) {
	c := NewCompiler()
	s := c.Plan.Summary()
	assert.NotContains(t, s, "front port")
}
