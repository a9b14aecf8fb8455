package routing

import (
	"testing"

	"github.com/kinstaky/logicroute/internal/lex"
	"github.com/kinstaky/logicroute/internal/slr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_downscaleTable_buildsWithoutError(t *testing.T) {
	// downscaleTable is built at package init via a panicking init-time
	// var; reaching this line at all proves the grammar is SLR(1).
	assert.NotNil(t, downscaleTable)
}

func parseDepth(t *testing.T, line string) int {
	t.Helper()
	toks, res := lex.Analyze(line)
	require.True(t, res.Ok())
	stoks := make([]slr.Token, len(toks))
	for i := range toks {
		stoks[i] = toks[i]
	}
	_, depth, err := slr.NewParser(downscaleTable).Parse(stoks)
	require.NoError(t, err)
	return depth
}

func Test_downscaleGrammar_depthZeroForUndivided(t *testing.T) {
	assert.Equal(t, 0, parseDepth(t, "A0 = B0 | C0 & D0"))
}

func Test_downscaleGrammar_depthOneForSingleDivision(t *testing.T) {
	assert.Equal(t, 1, parseDepth(t, "A0 = B0 / 10"))
}

func Test_downscaleGrammar_depthTwoForNestedDivision(t *testing.T) {
	assert.Equal(t, 2, parseDepth(t, "A0 = (B0 / 10) / 2"))
}

func Test_downscaleGrammar_depthPropagatesThroughParensAndOperators(t *testing.T) {
	assert.Equal(t, 1, parseDepth(t, "A0 = (B0 / 10) | C0"))
}

func Test_downscaleGrammar_rejectsMalformedLine(t *testing.T) {
	toks, res := lex.Analyze("A0 = | B0")
	require.True(t, res.Ok())
	stoks := make([]slr.Token, len(toks))
	for i := range toks {
		stoks[i] = toks[i]
	}
	_, _, err := slr.NewParser(downscaleTable).Parse(stoks)
	assert.Error(t, err)
}
