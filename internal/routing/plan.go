package routing

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/kinstaky/logicroute/internal/config"
	"github.com/kinstaky/logicroute/internal/lex"
)

// Gate is a gate's source bitset over the full address space: an or-gate
// or and-gate combines whichever bits are set, whatever layer they come
// from (front IO, a clock, another gate, a divider). 256 bits covers every
// offset defined in addr.go.
type Gate [4]uint64

// Set flags global address index i.
func (g *Gate) Set(i int) {
	g[i/64] |= 1 << uint(i%64)
}

// Equal reports whether two gates reference the same sources — the
// dedup test every pool lookup in config_parser.cpp's GenerateGate applies
// before allocating a new slot.
func (g Gate) Equal(o Gate) bool {
	return g == o
}

// PortSource pairs a local port/scaler index with the global source index
// feeding it (config_parser.h's OutputInfo).
type PortSource struct {
	Port   int
	Source int
}

// DividerInfo pairs a divider's global source index with its divisor.
type DividerInfo struct {
	Source  int
	Divisor int
}

// VariableInfo is a user-defined alias: the right-hand-side tokens it
// expands to wherever it's referenced (config_parser.cpp's VariableInfo).
type VariableInfo struct {
	Name   string
	Tokens []lex.Token
}

// Plan is the accumulated output of compiling a sequence of lines: every
// routing decision made so far, addressed the same way the hardware's
// source multiplexers are. Grounded on config_parser.h's private state and
// Clear()/the getter surface in config_parser.cpp.
type Plan struct {
	FrontOutputs       []PortSource
	frontOutUse        uint64
	frontInUse         uint64
	frontUseLemo       uint64
	FrontOutputInverse uint64

	BackOutput   int
	ExternClock  int

	gates [4][]Gate

	Dividers []DividerInfo

	Clocks []int

	Scalers  []PortSource
	scalerUse uint64

	Variables []VariableInfo

	Expressions []string

	// Limits shrinks the pool capacities below their hardware defaults, per
	// an operator-supplied config file. The zero value leaves every pool at
	// its addr.go default.
	Limits config.Limits
}

// NewPlan returns a cleared plan, equivalent to a fresh ConfigParser after
// its constructor calls Clear().
func NewPlan() *Plan {
	p := &Plan{}
	p.Clear()
	return p
}

// NewPlanWithLimits returns a cleared plan whose pool capacities are
// shrunk per limits (zero fields left at the hardware default).
func NewPlanWithLimits(limits config.Limits) *Plan {
	p := NewPlan()
	p.Limits = limits
	return p
}

// capacity returns l's pool size, shrunk to p.Limits' override if one is
// set and it doesn't exceed the hardware default.
func (p *Plan) capacity(l layer) int {
	def := l.capacity()
	var override int
	switch l {
	case layerOr:
		override = p.Limits.MaxOrGates
	case layerAnd:
		override = p.Limits.MaxAndGates
	case layerDivisorOr:
		override = p.Limits.MaxDividerOrGates
	case layerDivisorAnd:
		override = p.Limits.MaxDividerAndGates
	}
	if override > 0 && override < def {
		return override
	}
	return def
}

// dividerCapacity returns the divider pool size, shrunk per p.Limits.
func (p *Plan) dividerCapacity() int {
	if o := p.Limits.MaxDividers; o > 0 && o < MaxDividers {
		return o
	}
	return MaxDividers
}

// clockCapacity returns the clock pool size, shrunk per p.Limits.
func (p *Plan) clockCapacity() int {
	if o := p.Limits.MaxClocks; o > 0 && o < MaxClocks {
		return o
	}
	return MaxClocks
}

// Clear resets the plan to its initial state: no routes, one clock
// pre-seeded at 1Hz (config_parser.cpp's Clear() does the same, so index 0
// in Clocks is always the 1Hz reference used by SecondClock).
func (p *Plan) Clear() {
	p.FrontOutputs = nil
	p.frontOutUse = 0
	p.frontInUse = 0
	p.frontUseLemo = 0
	p.FrontOutputInverse = 0
	p.BackOutput = -1
	p.ExternClock = -1
	for i := range p.gates {
		p.gates[i] = nil
	}
	p.Dividers = nil
	p.Clocks = []int{1}
	p.Scalers = nil
	p.scalerUse = 0
	p.Variables = nil
	p.Expressions = nil
}

// IsFrontInput reports whether front port index (0-47) has been used as an
// input anywhere in the plan.
func (p *Plan) IsFrontInput(index int) bool {
	return index < FrontIoNum && p.frontInUse&(1<<uint(index)) != 0
}

// IsFrontOutput reports whether front port index has a source routed to it.
func (p *Plan) IsFrontOutput(index int) bool {
	return index < FrontIoNum && p.frontOutUse&(1<<uint(index)) != 0
}

// IsFrontLemo reports whether front port index was referenced through its
// LEMO-connector name.
func (p *Plan) IsFrontLemo(index int) bool {
	return index < FrontIoNum && p.frontUseLemo&(1<<uint(index)) != 0
}

// OrGateSize returns the number of allocated OR gates.
func (p *Plan) OrGateSize() int { return len(p.gates[layerOr-1]) }

// OrGate returns the source bitset of the i'th allocated OR gate.
func (p *Plan) OrGate(i int) Gate { return p.gateAt(layerOr, i) }

// AndGateSize returns the number of allocated AND gates.
func (p *Plan) AndGateSize() int { return len(p.gates[layerAnd-1]) }

// AndGate returns the source bitset of the i'th allocated AND gate.
func (p *Plan) AndGate(i int) Gate { return p.gateAt(layerAnd, i) }

// DivisorOrGateSize returns the number of allocated downscale-OR gates.
func (p *Plan) DivisorOrGateSize() int { return len(p.gates[layerDivisorOr-1]) }

// DivisorOrGate returns the i'th allocated downscale-OR gate's sources.
func (p *Plan) DivisorOrGate(i int) Gate { return p.gateAt(layerDivisorOr, i) }

// DivisorAndGateSize returns the number of allocated downscale-AND gates.
func (p *Plan) DivisorAndGateSize() int { return len(p.gates[layerDivisorAnd-1]) }

// DivisorAndGate returns the i'th allocated downscale-AND gate's sources.
func (p *Plan) DivisorAndGate(i int) Gate { return p.gateAt(layerDivisorAnd, i) }

func (p *Plan) gateAt(l layer, i int) Gate {
	pool := p.gates[l-1]
	if i < 0 || i >= len(pool) {
		return Gate{}
	}
	return pool[i]
}

// BackEnable reports whether the backplane output has a source.
func (p *Plan) BackEnable() bool { return p.BackOutput != -1 }

// ClockSize returns the number of distinct clock frequencies in use.
func (p *Plan) ClockSize() int { return len(p.Clocks) }

// ClockFrequency returns the frequency, in Hz, of the i'th clock.
func (p *Plan) ClockFrequency(i int) int { return p.Clocks[i] }

// SecondClock returns the global address of the 1Hz reference clock, which
// Clear() always pre-seeds at slot 0.
func (p *Plan) SecondClock() int {
	for i, f := range p.Clocks {
		if f == 1 {
			return ClocksOffset + i
		}
	}
	return -1
}

// ScalerSize returns the number of scaler outputs routed.
func (p *Plan) ScalerSize() int { return len(p.Scalers) }

// DividerSize returns the number of dividers allocated.
func (p *Plan) DividerSize() int { return len(p.Dividers) }

// Summary renders a fixed-width table of pool occupancy and front-port
// usage, the same way internal/slr.Table.String() lays out its ACTION/GOTO
// table with rosed.
func (p *Plan) Summary() string {
	pools := [][]string{
		{"pool", "used", "capacity"},
		{"or gates", fmt.Sprintf("%d", p.OrGateSize()), fmt.Sprintf("%d", p.capacity(layerOr))},
		{"and gates", fmt.Sprintf("%d", p.AndGateSize()), fmt.Sprintf("%d", p.capacity(layerAnd))},
		{"divisor-or gates", fmt.Sprintf("%d", p.DivisorOrGateSize()), fmt.Sprintf("%d", p.capacity(layerDivisorOr))},
		{"divisor-and gates", fmt.Sprintf("%d", p.DivisorAndGateSize()), fmt.Sprintf("%d", p.capacity(layerDivisorAnd))},
		{"dividers", fmt.Sprintf("%d", p.DividerSize()), fmt.Sprintf("%d", p.dividerCapacity())},
		{"clocks", fmt.Sprintf("%d", p.ClockSize()), fmt.Sprintf("%d", p.clockCapacity())},
	}

	out := rosed.Edit("").
		InsertTableOpts(0, pools, 8, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()

	ports := [][]string{{"front port", "input", "output", "lemo"}}
	for i := 0; i < FrontIoNum; i++ {
		if !p.IsFrontInput(i) && !p.IsFrontOutput(i) {
			continue
		}
		ports = append(ports, []string{
			frontIoName(i),
			boolMark(p.IsFrontInput(i)),
			boolMark(p.IsFrontOutput(i)),
			boolMark(p.IsFrontLemo(i)),
		})
	}
	if len(ports) > 1 {
		out += "\n\n" + rosed.Edit("").
			InsertTableOpts(0, ports, 8, rosed.Options{
				TableHeaders:             true,
				NoTrailingLineSeparators: true,
			}).
			String()
	}

	return out
}

func boolMark(b bool) string {
	if b {
		return "x"
	}
	return ""
}

// Snapshot is the exported, flat mirror of a Plan's full state, including
// the fields Plan itself keeps private. internal/backup encodes this (not
// a Plan directly) with rezi, since rezi's reflection-based codec only
// reaches exported fields.
type Snapshot struct {
	FrontOutputs       []PortSource
	FrontOutUse        uint64
	FrontInUse         uint64
	FrontUseLemo       uint64
	FrontOutputInverse uint64
	BackOutput         int
	ExternClock        int
	OrGates            []Gate
	AndGates           []Gate
	DivisorOrGates     []Gate
	DivisorAndGates    []Gate
	Dividers           []DividerInfo
	Clocks             []int
	Scalers            []PortSource
	ScalerUse          uint64
	Variables          []VariableInfo
	Expressions        []string
	Limits             config.Limits
}

// Snapshot captures p's full state, private fields included.
func (p *Plan) Snapshot() Snapshot {
	return Snapshot{
		FrontOutputs:       append([]PortSource(nil), p.FrontOutputs...),
		FrontOutUse:        p.frontOutUse,
		FrontInUse:         p.frontInUse,
		FrontUseLemo:       p.frontUseLemo,
		FrontOutputInverse: p.FrontOutputInverse,
		BackOutput:         p.BackOutput,
		ExternClock:        p.ExternClock,
		OrGates:            append([]Gate(nil), p.gates[layerOr-1]...),
		AndGates:           append([]Gate(nil), p.gates[layerAnd-1]...),
		DivisorOrGates:     append([]Gate(nil), p.gates[layerDivisorOr-1]...),
		DivisorAndGates:    append([]Gate(nil), p.gates[layerDivisorAnd-1]...),
		Dividers:           append([]DividerInfo(nil), p.Dividers...),
		Clocks:             append([]int(nil), p.Clocks...),
		Scalers:            append([]PortSource(nil), p.Scalers...),
		ScalerUse:          p.scalerUse,
		Variables:          append([]VariableInfo(nil), p.Variables...),
		Expressions:        append([]string(nil), p.Expressions...),
		Limits:             p.Limits,
	}
}

// RestorePlan rebuilds a Plan from a snapshot, the inverse of Snapshot.
func RestorePlan(s Snapshot) *Plan {
	p := &Plan{
		FrontOutputs:       append([]PortSource(nil), s.FrontOutputs...),
		frontOutUse:        s.FrontOutUse,
		frontInUse:         s.FrontInUse,
		frontUseLemo:       s.FrontUseLemo,
		FrontOutputInverse: s.FrontOutputInverse,
		BackOutput:         s.BackOutput,
		ExternClock:        s.ExternClock,
		Dividers:           append([]DividerInfo(nil), s.Dividers...),
		Clocks:             append([]int(nil), s.Clocks...),
		Scalers:            append([]PortSource(nil), s.Scalers...),
		scalerUse:          s.ScalerUse,
		Variables:          append([]VariableInfo(nil), s.Variables...),
		Expressions:        append([]string(nil), s.Expressions...),
		Limits:             s.Limits,
	}
	p.gates[layerOr-1] = append([]Gate(nil), s.OrGates...)
	p.gates[layerAnd-1] = append([]Gate(nil), s.AndGates...)
	p.gates[layerDivisorOr-1] = append([]Gate(nil), s.DivisorOrGates...)
	p.gates[layerDivisorAnd-1] = append([]Gate(nil), s.DivisorAndGates...)
	return p
}
