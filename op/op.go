// Package op defines the operations executed by the fnord virtual machine and
// the two textual dialects that spell them.
package op

// Code identifies one of the eight tape machine operations.
type Code uint8

const (
	Invalid Code = 0

	// Pointer movement
	ShiftLeft  Code = 1
	ShiftRight Code = 2

	// Cell arithmetic
	Increment Code = 3
	Decrement Code = 4

	// I/O
	Print Code = 5
	Input Code = 6

	// Loops
	LoopStart Code = 7
	LoopEnd   Code = 8
)

// Info contains information about an operation: its display name and how
// each dialect spells it.
type Info struct {
	Code    Code
	Name    string
	Symbol  byte
	Keyword string
}

var infos = make([]Info, 16)

// codes lists the valid operations in keyword match order.
var codes []Code

func init() {
	type opInfo struct {
		op      Code
		name    string
		symbol  byte
		keyword string
	}
	ops := []opInfo{
		{ShiftLeft, "SHIFT_LEFT", '<', "fnord"},
		{ShiftRight, "SHIFT_RIGHT", '>', "kallisti"},
		{Print, "PRINT", '.', "pineal"},
		{Input, "INPUT", ',', "chaos"},
		{LoopStart, "LOOP_START", '[', "23"},
		{Increment, "INCREMENT", '+', "5"},
		{Decrement, "DECREMENT", '-', "hail"},
		{LoopEnd, "LOOP_END", ']', "eris"},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:    o.op,
			Name:    o.name,
			Symbol:  o.symbol,
			Keyword: o.keyword,
		}
		codes = append(codes, o.op)
	}
}

// GetInfo returns information about the given operation.
func GetInfo(c Code) Info {
	if int(c) >= len(infos) {
		return Info{}
	}
	return infos[c]
}

// Codes returns every valid operation.
func Codes() []Code {
	out := make([]Code, len(codes))
	copy(out, codes)
	return out
}

// String returns the operation's display name, e.g. "LOOP_START".
func (c Code) String() string {
	if name := GetInfo(c).Name; name != "" {
		return name
	}
	return "INVALID"
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IsValid reports whether c is one of the eight operations.
func (c Code) IsValid() bool {
	return c >= ShiftLeft && c <= LoopEnd
}

// FromSymbol maps a symbol dialect character to its operation.
func FromSymbol(ch byte) (Code, bool) {
	for _, c := range codes {
		if infos[c].Symbol == ch {
			return c, true
		}
	}
	return Invalid, false
}

// MatchKeyword reports the operation whose keyword starts at the beginning
// of text, along with the keyword length. Matching is literal and
// case-sensitive.
func MatchKeyword(text string) (Code, int, bool) {
	for _, c := range codes {
		kw := infos[c].Keyword
		if len(text) >= len(kw) && text[:len(kw)] == kw {
			return c, len(kw), true
		}
	}
	return Invalid, 0, false
}
