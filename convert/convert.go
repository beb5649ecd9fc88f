// Package convert rewrites symbol dialect programs in the keyword dialect.
//
// Conversion is a pure per-character transform over the shared operation
// table in package op. Characters that are not operations are dropped.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/fnord-lang/fnord/internal/lexer"
	"github.com/fnord-lang/fnord/op"
)

// Translate returns symbolText spelled in the keyword dialect. Keywords are
// written back to back with no separator.
func Translate(symbolText string) string {
	var b strings.Builder
	for i := 0; i < len(symbolText); i++ {
		if code, ok := op.FromSymbol(symbolText[i]); ok {
			b.WriteString(op.GetInfo(code).Keyword)
		}
	}
	return b.String()
}

// ToSymbols returns keywordText spelled in the symbol dialect.
func ToSymbols(keywordText string) string {
	var b strings.Builder
	l := lexer.New(keywordText, op.Keyword)
	for {
		tok, ok := l.Next()
		if !ok {
			return b.String()
		}
		b.WriteByte(op.GetInfo(tok.Code).Symbol)
	}
}

// OutputPath returns the path File writes to: path with its extension
// replaced by op.KeywordExt.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + op.KeywordExt
}

// File translates the symbol dialect program at path and writes it next to
// the input with the extension changed to op.KeywordExt. It returns the
// path written.
func File(path string) (string, error) {
	if op.DialectForPath(path) == op.Keyword {
		return "", fmt.Errorf("%s is already a %s file", path, op.KeywordExt)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	out := OutputPath(path)
	if err := os.WriteFile(out, []byte(Translate(string(src))), info.Mode().Perm()); err != nil {
		return "", err
	}
	return out, nil
}

// Files converts every path with File. Duplicate paths are converted once
// and directories are skipped. A failure does not stop the batch: all
// failures are returned together and the written paths are returned in
// input order.
func Files(paths []string) ([]string, error) {
	var (
		written []string
		result  *multierror.Error
	)
	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		key := filepath.Clean(path)
		if seen[key] {
			continue
		}
		seen[key] = true
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			continue
		}
		out, err := File(path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("convert %s: %w", path, err))
			continue
		}
		written = append(written, out)
	}
	return written, result.ErrorOrNil()
}
