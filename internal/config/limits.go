// Package config loads operator-supplied pool-capacity overrides from a
// TOML file, grounded on config_parser.cpp's fixed address-space constants
// and the cmd/tqi pattern of keeping runtime tunables out of the binary.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Hardware defaults, mirrored from internal/routing/addr.go. Kept as plain
// literals here rather than importing internal/routing, which imports this
// package to apply the overrides.
const (
	defaultMaxOrGates         = 16
	defaultMaxAndGates        = 16
	defaultMaxDividers        = 8
	defaultMaxDividerOrGates  = 8
	defaultMaxDividerAndGates = 8
	defaultMaxClocks          = 4
)

// Limits shrinks the fixed-capacity resource pools of a board variant with
// less gate fabric than the full hardware address space. A zero field means
// "use the hardware default" — the config file can only lower a pool's
// capacity, never raise it past the fixed address space.
type Limits struct {
	MaxOrGates         int `toml:"max_or_gates"`
	MaxAndGates        int `toml:"max_and_gates"`
	MaxDividers        int `toml:"max_dividers"`
	MaxDividerOrGates  int `toml:"max_divider_or_gates"`
	MaxDividerAndGates int `toml:"max_divider_and_gates"`
	MaxClocks          int `toml:"max_clocks"`
}

// Default returns the full hardware pool capacities: every field the
// fixed address space allows, no shrinking applied.
func Default() Limits {
	return Limits{
		MaxOrGates:         defaultMaxOrGates,
		MaxAndGates:        defaultMaxAndGates,
		MaxDividers:        defaultMaxDividers,
		MaxDividerOrGates:  defaultMaxDividerOrGates,
		MaxDividerAndGates: defaultMaxDividerAndGates,
		MaxClocks:          defaultMaxClocks,
	}
}

// Load reads pool-capacity overrides from the TOML file at path. Fields
// absent from the file decode to zero, meaning "use the hardware default".
func Load(path string) (Limits, error) {
	var l Limits
	if _, err := toml.DecodeFile(path, &l); err != nil {
		return Limits{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return Limits{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return l, nil
}

// Validate reports an error if any override exceeds its hardware default —
// a config file may only shrink a pool, never exceed the fixed address
// space internal/routing allocates from.
func (l Limits) Validate() error {
	def := Default()
	checks := []struct {
		name     string
		val, max int
	}{
		{"max_or_gates", l.MaxOrGates, def.MaxOrGates},
		{"max_and_gates", l.MaxAndGates, def.MaxAndGates},
		{"max_dividers", l.MaxDividers, def.MaxDividers},
		{"max_divider_or_gates", l.MaxDividerOrGates, def.MaxDividerOrGates},
		{"max_divider_and_gates", l.MaxDividerAndGates, def.MaxDividerAndGates},
		{"max_clocks", l.MaxClocks, def.MaxClocks},
	}
	for _, c := range checks {
		if c.val > c.max {
			return fmt.Errorf("%s: %d exceeds hardware maximum %d", c.name, c.val, c.max)
		}
		if c.val < 0 {
			return fmt.Errorf("%s: must not be negative", c.name)
		}
	}
	return nil
}
