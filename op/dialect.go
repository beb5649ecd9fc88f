package op

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Dialect selects the textual syntax of a program.
type Dialect uint8

const (
	// Symbol is the one character per operation syntax, e.g. "+[-]".
	Symbol Dialect = iota
	// Keyword is the BrainFNORD syntax, e.g. "523haileris".
	Keyword
)

// KeywordExt is the file extension of keyword dialect sources.
const KeywordExt = ".bf2"

func (d Dialect) String() string {
	switch d {
	case Symbol:
		return "symbol"
	case Keyword:
		return "keyword"
	default:
		return fmt.Sprintf("dialect(%d)", uint8(d))
	}
}

// ParseDialect converts a dialect name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "symbol", "bf", "brainfuck":
		return Symbol, nil
	case "keyword", "bf2", "fnord", "brainfnord":
		return Keyword, nil
	default:
		return Symbol, fmt.Errorf("unknown dialect: %q", name)
	}
}

// DialectForPath guesses the dialect from a file extension.
func DialectForPath(path string) Dialect {
	if strings.EqualFold(filepath.Ext(path), KeywordExt) {
		return Keyword
	}
	return Symbol
}
