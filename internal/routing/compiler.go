package routing

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/kinstaky/logicroute/internal/config"
	"github.com/kinstaky/logicroute/internal/diag"
	"github.com/kinstaky/logicroute/internal/lex"
	"github.com/kinstaky/logicroute/internal/slr"
)

// Compiler is the top-level entry point: one line at a time (Parse) or a
// whole file (Read), accumulating routing decisions into a Plan. Grounded
// on config_parser.cpp's ConfigParser: the same lex -> CheckIdentifiers ->
// CheckIoConflict -> variable expansion -> grammar validation -> tree
// build/normalize -> allocate -> left-hand-side dispatch pipeline.
type Compiler struct {
	Plan *Plan
}

// NewCompiler returns a compiler with a freshly cleared plan.
func NewCompiler() *Compiler {
	return &Compiler{Plan: NewPlan()}
}

// NewCompilerWithLimits returns a compiler whose plan's pool capacities are
// shrunk per limits, e.g. for a smaller board variant.
func NewCompilerWithLimits(limits config.Limits) *Compiler {
	return &Compiler{Plan: NewPlanWithLimits(limits)}
}

// Clear discards every routing decision made so far.
func (c *Compiler) Clear() {
	c.Plan.Clear()
}

// Read compiles every non-empty line of the file at path in order, stopping
// at the first error.
func (c *Compiler) Read(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if res := c.Parse(line); !res.Ok() {
			return fmt.Errorf("%s", res.Render(line))
		}
	}
	return scanner.Err()
}

// Parse compiles a single "target = expression" line into the plan.
func (c *Compiler) Parse(line string) diag.Result {
	c.Plan.Expressions = append(c.Plan.Expressions, line)

	tokens, lexRes := lex.Analyze(line)
	if !lexRes.Ok() {
		return lexRes
	}

	if res := c.checkIdentifiers(tokens); !res.Ok() {
		return res
	}
	if res := c.checkIoConflict(tokens); !res.Ok() {
		return res
	}

	rhs := expandVariables(tokens[2:], c.Plan.Variables)

	full := make([]lex.Token, 0, 2+len(rhs))
	full = append(full, tokens[0], tokens[1])
	full = append(full, rhs...)

	stoks := make([]slr.Token, len(full))
	for i := range full {
		stoks[i] = full[i]
	}

	_, depth, err := slr.NewParser(downscaleTable).Parse(stoks)
	if err != nil {
		return mapParseError(err)
	}
	if depth >= 2 {
		return diag.New(diag.StatusNestedDownscale)
	}

	vars := NewVarTable()
	tree, res := buildDownscaleTree(rhs, vars)
	if !res.Ok() {
		return res
	}

	leftName := tokens[0].Text
	isScaler := IsScaler(leftName)

	generateIndex := -1
	switch tree.Master.Op {
	case OpNull:
		switch {
		case tree.Master.HasLeaf(0), tree.Master.HasLeaf(1):
			generateIndex = ZeroValueOffset
		default:
			if idx, ok := GenerateGate(tree, tree.Master, layerLeaf, isScaler, c.Plan); ok {
				generateIndex = idx
			}
		}
	case OpOr:
		l := layerOr
		if depth == 1 {
			l = layerDivisorOr
		}
		if idx, ok := GenerateGate(tree, tree.Master, l, isScaler, c.Plan); ok {
			generateIndex = idx
		}
	case OpAnd:
		l := layerAnd
		if depth == 1 {
			l = layerDivisorAnd
		}
		if idx, ok := GenerateGate(tree, tree.Master, l, isScaler, c.Plan); ok {
			generateIndex = idx
		}
	}
	if generateIndex < 0 {
		return diag.New(diag.StatusPoolExhausted)
	}

	c.route(leftName, tokens, tree, generateIndex)

	return diag.Result{}
}

// route dispatches the resolved source to wherever the left-hand-side name
// points: a front port, the backplane, a scaler, the external clock, or a
// newly defined variable.
func (c *Compiler) route(leftName string, tokens []lex.Token, tree *DownscaleTree, generateIndex int) {
	switch {
	case IsFrontIo(leftName):
		idx := frontIoIndex(leftName)
		c.Plan.FrontOutputs = append(c.Plan.FrontOutputs, PortSource{Port: idx, Source: generateIndex})
		c.Plan.frontOutUse |= 1 << uint(idx)
		if !IsClock(tokens[2].Text) {
			c.Plan.FrontOutputInverse |= 1 << uint(idx)
			if tree.Master.Op == OpNull && tree.Master.HasLeaf(1) {
				c.Plan.FrontOutputInverse &^= 1 << uint(idx)
			}
		}
		if IsLemoIo(leftName) {
			c.Plan.frontUseLemo |= 1 << uint(idx)
		}

	case IsBack(leftName):
		c.Plan.BackOutput = generateIndex

	case IsScaler(leftName):
		idx, _ := strconv.Atoi(leftName[1:])
		c.Plan.Scalers = append(c.Plan.Scalers, PortSource{Port: idx, Source: generateIndex})
		c.Plan.scalerUse |= 1 << uint(idx)

	case IsExternalClock(leftName):
		c.Plan.ExternClock = generateIndex - ClocksOffset

	default:
		c.Plan.Variables = append(c.Plan.Variables, VariableInfo{
			Name:   leftName,
			Tokens: append([]lex.Token(nil), tokens[2:]...),
		})
	}
}

func mapParseError(err error) diag.Result {
	pe, ok := err.(*slr.ParseError)
	if !ok {
		return diag.New(diag.StatusTableCorrupt)
	}
	status := diag.StatusTableCorrupt
	switch pe.Kind {
	case slr.ErrNoAction:
		status = diag.StatusNoAction
	case slr.ErrCannotShift:
		status = diag.StatusCannotShift
	case slr.ErrUnexpectedKind:
		status = diag.StatusUnexpectedKind
	}
	return diag.At(status, pe.Token.Position(), pe.Token.Length())
}

func (c *Compiler) isDefinedVariable(name string) bool {
	if !IsVariable(name) {
		return false
	}
	for _, v := range c.Plan.Variables {
		if v.Name == name {
			return true
		}
	}
	return false
}

// checkIdentifiers validates the syntactic form of every token (spec
// section 4.7 codes 201/202), grounded on CheckIdentifiers.
func (c *Compiler) checkIdentifiers(tokens []lex.Token) diag.Result {
	if len(tokens) < 3 {
		return diag.New(diag.StatusTooFewTokens)
	}
	left := tokens[0].Text

	if len(tokens) == 3 {
		rhs := tokens[2]
		if rhs.Kind != lex.KindVariable && rhs.Kind != lex.KindNumber {
			return diag.At(diag.StatusBadRHSForm, rhs.Pos, rhs.Len)
		}
		if IsClock(rhs.Text) {
			if !IsFrontIo(left) && !IsExternalClock(left) {
				return diag.At(diag.StatusBadRHSForm, rhs.Pos, rhs.Len)
			}
		} else if !IsFrontIo(rhs.Text) && !c.isDefinedVariable(rhs.Text) && rhs.Text != "0" && rhs.Text != "1" {
			return diag.At(diag.StatusBadRHSForm, rhs.Pos, rhs.Len)
		}
		return diag.Result{}
	}

	for i := 2; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind == lex.KindVariable {
			if !IsFrontIo(tok.Text) && !c.isDefinedVariable(tok.Text) {
				return diag.At(diag.StatusBadRHSForm, tok.Pos, tok.Len)
			}
			continue
		}
		switch tok.Kind {
		case lex.KindAnd, lex.KindOr, lex.KindLParen, lex.KindRParen, lex.KindSlash, lex.KindNumber:
			// operator or literal, always acceptable here
		default:
			return diag.At(diag.StatusBadRHSForm, tok.Pos, tok.Len)
		}
	}
	return diag.Result{}
}

// checkIoConflict validates output/input consistency against everything
// compiled into the plan so far (spec section 4.7 codes 203-207, 209),
// grounded on CheckIoConflict.
func (c *Compiler) checkIoConflict(tokens []lex.Token) diag.Result {
	left := tokens[0].Text
	lt := tokens[0]

	switch {
	case IsBack(left):
		if c.Plan.BackEnable() {
			return diag.At(diag.StatusOutputConflict, lt.Pos, lt.Len)
		}
	case IsExternalClock(left):
		if c.Plan.ExternClock != -1 {
			return diag.At(diag.StatusOutputConflict, lt.Pos, lt.Len)
		}
		if len(tokens) != 3 || !IsClock(tokens[2].Text) {
			return diag.At(diag.StatusExternNotClock, tokens[2].Pos, tokens[2].Len)
		}
	case IsFrontIo(left):
		if c.Plan.IsFrontOutput(frontIoIndex(left)) {
			return diag.At(diag.StatusOutputConflict, lt.Pos, lt.Len)
		}
	case IsScaler(left):
		idx, _ := strconv.Atoi(left[1:])
		if c.Plan.scalerUse&(1<<uint(idx)) != 0 {
			return diag.At(diag.StatusOutputConflict, lt.Pos, lt.Len)
		}
	default:
		for _, v := range c.Plan.Variables {
			if v.Name == left {
				return diag.At(diag.StatusOutputConflict, lt.Pos, lt.Len)
			}
		}
	}

	if IsFrontIo(tokens[2].Text) {
		for i := 2; i < len(tokens); i++ {
			if tokens[i].Kind != lex.KindVariable {
				continue
			}
			if tokens[i].Text == left {
				return diag.At(diag.StatusDirectionConflict, lt.Pos, lt.Len)
			}
		}
	}

	if IsFrontIo(left) && c.Plan.IsFrontInput(frontIoIndex(left)) {
		return diag.At(diag.StatusDirectionConflict, lt.Pos, lt.Len)
	}

	if !IsClock(tokens[2].Text) {
		if IsScaler(left) && len(tokens) == 3 {
			if tokens[2].Kind != lex.KindVariable {
				return diag.At(diag.StatusScalerNotSingle, tokens[2].Pos, tokens[2].Len)
			}
		} else {
			for i := 2; i < len(tokens); i++ {
				if tokens[i].Kind != lex.KindVariable || !IsFrontIo(tokens[i].Text) {
					continue
				}
				if c.Plan.IsFrontOutput(frontIoIndex(tokens[i].Text)) {
					return diag.At(diag.StatusDirectionConflict, tokens[i].Pos, tokens[i].Len)
				}
			}
		}
	}

	for i := 2; i < len(tokens); i++ {
		if tokens[i].Kind != lex.KindVariable || !IsFrontIo(tokens[i].Text) {
			continue
		}
		idx := frontIoIndex(tokens[i].Text)
		if !c.Plan.IsFrontInput(idx) {
			continue
		}
		if c.Plan.IsFrontLemo(idx) != IsLemoIo(tokens[i].Text) {
			return diag.At(diag.StatusLemoConflict, tokens[i].Pos, tokens[i].Len)
		}
	}

	for i := 2; i < len(tokens); i++ {
		if tokens[i].Kind != lex.KindVariable || !IsVariable(tokens[i].Text) {
			continue
		}
		if !c.isDefinedVariable(tokens[i].Text) {
			return diag.At(diag.StatusUndefinedVar, tokens[i].Pos, tokens[i].Len)
		}
	}

	return diag.Result{}
}
