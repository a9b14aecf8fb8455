package routing

import (
	"strconv"
	"strings"
)

// Identifier classification predicates, ground truthed on config_parser.cpp's
// IsFrontIo/IsLemoIo/IsClock/IsScaler/IsDivider/IsBack/IsExternalClock and
// IdentifierIndex/ParseFrequency. Each physical front port has two names: a
// direct one (A0-A15, B0-B15, C0-C15) and a LEMO-connector one (A16-A31,
// B16-B31, C16-C31) that addresses the same 48-slot logical space — the
// LEMO suffix just picks the other physical pin for the same logical input.

func isUpperLetterAtoC(b byte) bool {
	return b >= 'A' && b <= 'C'
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsFrontIo reports whether name is a valid front-panel port name: A, B, or
// C followed by a 0-31 port number (both the direct and LEMO physical pin
// ranges).
func IsFrontIo(name string) bool {
	if len(name) < 2 || len(name) > 3 {
		return false
	}
	if !isUpperLetterAtoC(name[0]) {
		return false
	}
	if !allDigits(name[1:]) {
		return false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n >= FrontIoGroupSize*2 {
		return false
	}
	return true
}

// IsLemoIo reports whether name addresses the LEMO-connector half (16-31)
// of a front port's physical pin range.
func IsLemoIo(name string) bool {
	if len(name) < 2 || len(name) > 3 {
		return false
	}
	if !isUpperLetterAtoC(name[0]) {
		return false
	}
	if !allDigits(name[1:]) {
		return false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil {
		return false
	}
	return n >= FrontIoGroupSize && n < FrontIoGroupSize*2
}

// IsClock reports whether name has the form clock_<N>[k|M]Hz.
func IsClock(name string) bool {
	if len(name) < 9 {
		return false
	}
	if name[:6] != "clock_" {
		return false
	}
	if name[len(name)-2:] != "Hz" {
		return false
	}
	gain := name[len(name)-3] == 'k' || name[len(name)-3] == 'M'
	suffixSize := 2
	if gain {
		suffixSize = 3
	}
	digits := name[6 : len(name)-suffixSize]
	return allDigits(digits)
}

// IsScaler reports whether name is a scaler output, S0 through S<MaxScalers-1>.
func IsScaler(name string) bool {
	if len(name) < 2 || name[0] != 'S' {
		return false
	}
	if !allDigits(name[1:]) {
		return false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n >= MaxScalers {
		return false
	}
	return true
}

// IsDivider reports whether name is a synthetic downscale placeholder
// leaf, _D0 through _D<MaxDividers-1>, as interned by buildDownscaleTree.
func IsDivider(name string) bool {
	if !strings.HasPrefix(name, "_D") {
		return false
	}
	digits := name[2:]
	if !allDigits(digits) {
		return false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n >= MaxDividers {
		return false
	}
	return true
}

// IsBack reports whether name is the single backplane output port.
func IsBack(name string) bool {
	return name == "Back"
}

// IsExternalClock reports whether name is the external clock output port.
func IsExternalClock(name string) bool {
	return name == "Extern"
}

// IsVariable reports whether name is syntactically a plain identifier that
// isn't one of the other reserved forms — the catch-all "this must be a
// user-defined alias" case used by CheckIdentifiers/CheckIoConflict/
// ReplaceVariables.
func IsVariable(name string) bool {
	if name == "0" || name == "1" {
		return false
	}
	if IsFrontIo(name) || IsClock(name) || IsScaler(name) || IsDivider(name) || IsBack(name) || IsExternalClock(name) {
		return false
	}
	if name == "" {
		return false
	}
	if !(name[0] >= 'A' && name[0] <= 'Z' || name[0] >= 'a' && name[0] <= 'z') {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		alnum := c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_'
		if !alnum {
			return false
		}
	}
	return true
}

// ParseFrequency extracts the frequency in Hz encoded by a clock_<N>[k|M]Hz
// identifier.
func ParseFrequency(clock string) int {
	gain := 1
	if clock[len(clock)-3] == 'k' {
		gain = 1000
	} else if clock[len(clock)-3] == 'M' {
		gain = 1000000
	}
	suffixSize := 2
	if gain != 1 {
		suffixSize = 3
	}
	n, _ := strconv.Atoi(clock[6 : len(clock)-suffixSize])
	return n * gain
}

// frontIoIndex maps a front-port name to its 0-47 logical slot: group A/B/C
// contributes an offset of 0/16/32, and a LEMO name folds onto the same
// slot as its direct counterpart (pin-16 minus 16).
func frontIoIndex(name string) int {
	n, _ := strconv.Atoi(name[1:])
	if IsLemoIo(name) {
		n -= FrontIoGroupSize
	}
	switch name[0] {
	case 'B':
		n += FrontIoGroupSize
	case 'C':
		n += FrontIoGroupSize * 2
	}
	return n
}

// frontIoName is the inverse of frontIoIndex: it renders a logical 0-47
// slot back to its direct (non-LEMO) port name, for display purposes.
func frontIoName(index int) string {
	group := byte('A')
	switch {
	case index >= FrontIoGroupSize*2:
		group = 'C'
		index -= FrontIoGroupSize * 2
	case index >= FrontIoGroupSize:
		group = 'B'
		index -= FrontIoGroupSize
	}
	return string(group) + strconv.Itoa(index)
}
