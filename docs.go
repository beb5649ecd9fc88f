package fnord

import (
	"encoding/json"
	"strings"

	"github.com/fnord-lang/fnord/op"
)

// DocsOption configures documentation retrieval.
type DocsOption func(*docsOptions)

type docsOptions struct {
	category string
	topic    string
	all      bool
}

// DocsCategory filters documentation to a specific category.
// Valid categories: "operations", "dialects", "errors"
func DocsCategory(cat string) DocsOption {
	return func(o *docsOptions) {
		o.category = cat
	}
}

// DocsTopic retrieves documentation for one operation, looked up by name,
// symbol or keyword. Examples: "print", "+", "kallisti"
func DocsTopic(topic string) DocsOption {
	return func(o *docsOptions) {
		o.topic = topic
	}
}

// DocsQuick returns a concise quick reference. This is the default.
func DocsQuick() DocsOption {
	return func(o *docsOptions) {}
}

// DocsAll returns complete documentation.
func DocsAll() DocsOption {
	return func(o *docsOptions) {
		o.all = true
	}
}

// Documentation provides structured access to fnord documentation.
type Documentation struct {
	data any
}

// JSON returns the documentation as a JSON string.
func (d *Documentation) JSON() string {
	b, _ := json.MarshalIndent(d.data, "", "  ")
	return string(b)
}

// Data returns the raw documentation data.
func (d *Documentation) Data() any {
	return d.data
}

type docsInfo struct {
	Version        string `json:"version"`
	Description    string `json:"description"`
	ExecutionModel string `json:"execution_model"`
	TapeSize       int    `json:"tape_size"`
}

type docsOperation struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Keyword     string `json:"keyword"`
	Description string `json:"description"`
}

type docsDialect struct {
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases"`
	Extension string   `json:"extension,omitempty"`
	Matching  string   `json:"matching"`
}

type docsErrorPattern struct {
	Type    string `json:"type"`
	Message string `json:"message_pattern"`
	Cause   string `json:"cause"`
	Example string `json:"example"`
}

type docsQuickReference struct {
	Fnord      docsInfo          `json:"fnord"`
	Operations []docsOperation   `json:"operations"`
	Topics     map[string]string `json:"topics"`
}

type docsFullDocumentation struct {
	Fnord      docsInfo           `json:"fnord"`
	Operations []docsOperation    `json:"operations"`
	Dialects   []docsDialect      `json:"dialects"`
	Errors     []docsErrorPattern `json:"errors"`
}

// Docs returns structured documentation about the operation set, the two
// dialects and the errors a program can produce.
//
//	docs := fnord.Docs(fnord.DocsTopic("eris"))
//	fmt.Println(docs.JSON())
func Docs(opts ...DocsOption) *Documentation {
	o := &docsOptions{}
	for _, opt := range opts {
		opt(o)
	}
	switch {
	case o.all:
		return &Documentation{data: buildFullDocumentation()}
	case o.category != "":
		return &Documentation{data: buildCategoryDocs(o.category)}
	case o.topic != "":
		return &Documentation{data: buildTopicDocs(o.topic)}
	}
	return &Documentation{data: buildQuickReference()}
}

var docsDescriptions = map[op.Code]string{
	op.ShiftLeft:  "Move the tape pointer one cell left, wrapping from 0 to the last cell",
	op.ShiftRight: "Move the tape pointer one cell right, wrapping from the last cell to 0",
	op.Increment:  "Add one to the current cell, wrapping 255 to 0",
	op.Decrement:  "Subtract one from the current cell, wrapping 0 to 255",
	op.Print:      "Append the character whose code point is the current cell to the output",
	op.Input:      "Suspend until a character is supplied, then store its low byte in the current cell",
	op.LoopStart:  "If the current cell is zero, jump past the matching loop end",
	op.LoopEnd:    "If the current cell is nonzero, jump back to the matching loop start",
}

var docsDialects = []docsDialect{
	{
		Name:     op.Symbol.String(),
		Aliases:  []string{"bf", "brainfuck"},
		Matching: "one character per operation; every other character is ignored",
	},
	{
		Name:      op.Keyword.String(),
		Aliases:   []string{"bf2", "fnord", "brainfnord"},
		Extension: op.KeywordExt,
		Matching:  "case-sensitive keywords matched anywhere, including inside longer words",
	},
}

var docsErrorPatterns = []docsErrorPattern{
	{
		Type:    "structural error",
		Message: "unmatched loop end %q",
		Cause:   "a loop end has no loop start before it",
		Example: "+]",
	},
	{
		Type:    "structural error",
		Message: "unclosed loop start %q",
		Cause:   "a loop start is never closed",
		Example: "+[-",
	},
}

func docsInfoBlock() docsInfo {
	return docsInfo{
		Version:        Version,
		Description:    "Brainfuck and BrainFNORD interpreter",
		ExecutionModel: "source → lexer → compiler → program → vm",
		TapeSize:       30000,
	}
}

func docsOperations() []docsOperation {
	codes := op.Codes()
	ops := make([]docsOperation, 0, len(codes))
	for _, code := range codes {
		ops = append(ops, docsOperationFor(code))
	}
	return ops
}

func docsOperationFor(code op.Code) docsOperation {
	info := op.GetInfo(code)
	return docsOperation{
		Name:        info.Name,
		Symbol:      string(info.Symbol),
		Keyword:     info.Keyword,
		Description: docsDescriptions[code],
	}
}

func buildQuickReference() docsQuickReference {
	return docsQuickReference{
		Fnord:      docsInfoBlock(),
		Operations: docsOperations(),
		Topics: map[string]string{
			"operations": "The eight operations in both spellings",
			"dialects":   "How source text is matched in each dialect",
			"errors":     "Structural errors reported before a program runs",
		},
	}
}

func buildFullDocumentation() docsFullDocumentation {
	return docsFullDocumentation{
		Fnord:      docsInfoBlock(),
		Operations: docsOperations(),
		Dialects:   docsDialects,
		Errors:     docsErrorPatterns,
	}
}

func buildCategoryDocs(category string) any {
	switch category {
	case "operations":
		return map[string]any{
			"category":   "operations",
			"count":      len(op.Codes()),
			"operations": docsOperations(),
		}
	case "dialects":
		return map[string]any{
			"category": "dialects",
			"dialects": docsDialects,
		}
	case "errors":
		return map[string]any{
			"category": "errors",
			"patterns": docsErrorPatterns,
		}
	default:
		return map[string]any{
			"error": "unknown category: " + category,
		}
	}
}

func buildTopicDocs(topic string) any {
	for _, code := range op.Codes() {
		info := op.GetInfo(code)
		if strings.EqualFold(topic, info.Name) ||
			strings.EqualFold(strings.ReplaceAll(topic, " ", "_"), info.Name) ||
			topic == string(info.Symbol) ||
			topic == info.Keyword {
			return map[string]any{
				"type":      "operation",
				"operation": docsOperationFor(code),
			}
		}
	}
	return map[string]any{
		"error": "unknown topic: " + topic,
	}
}
