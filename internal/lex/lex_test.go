package lex

import (
	"testing"

	"github.com/kinstaky/logicroute/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Analyze_simpleAssignment(t *testing.T) {
	toks, res := Analyze("A13 = A3 | A7")
	require.True(t, res.Ok())
	require.Len(t, toks, 5)

	assert.Equal(t, KindVariable, toks[0].Kind)
	assert.Equal(t, "A13", toks[0].Text)
	assert.Equal(t, KindEquals, toks[1].Kind)
	assert.Equal(t, KindVariable, toks[2].Kind)
	assert.Equal(t, KindOr, toks[3].Kind)
	assert.Equal(t, KindVariable, toks[4].Kind)
}

func Test_Analyze_tokenSubstringMatchesSource(t *testing.T) {
	line := "C5 = (A0 / 10) | (C0 / 100)"
	toks, res := Analyze(line)
	require.True(t, res.Ok())
	for _, tok := range toks {
		assert.Equal(t, tok.Text, line[tok.Pos:tok.Pos+tok.Len])
	}
}

func Test_Analyze_preservesOrder(t *testing.T) {
	toks, res := Analyze("A & B")
	require.True(t, res.Ok())
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{KindVariable, KindAnd, KindVariable}, kinds)
}

func Test_Analyze_identStartsWithDigit(t *testing.T) {
	_, res := Analyze("0ac")
	require.False(t, res.Ok())
	assert.Equal(t, diag.StatusIdentStartsDigit, res.Status)
	assert.Equal(t, 0, res.Position)
	assert.Equal(t, 1, res.Length)
}

func Test_Analyze_identStartsWithUnderscore(t *testing.T) {
	_, res := Analyze("_abc")
	require.False(t, res.Ok())
	assert.Equal(t, diag.StatusIdentStartsUnder, res.Status)
	assert.Equal(t, 0, res.Position)
}

func Test_Analyze_invalidChar(t *testing.T) {
	_, res := Analyze("A & @d")
	require.False(t, res.Ok())
	assert.Equal(t, diag.StatusInvalidChar, res.Status)
	assert.Equal(t, 4, res.Position)
}

func Test_Analyze_numberLiteral(t *testing.T) {
	toks, res := Analyze("A0 / 10")
	require.True(t, res.Ok())
	require.Len(t, toks, 3)
	assert.Equal(t, KindNumber, toks[2].Kind)
	assert.Equal(t, 10, toks[2].NumValue)
}
