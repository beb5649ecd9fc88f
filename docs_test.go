package fnord

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocsQuick(t *testing.T) {
	j := Docs(DocsQuick()).JSON()
	require.Contains(t, j, `"version"`)
	require.Contains(t, j, `"operations"`)
	require.Contains(t, j, `"topics"`)
	require.Contains(t, j, `"kallisti"`)
}

func TestDocsDefault(t *testing.T) {
	data := Docs().Data()
	ref, ok := data.(docsQuickReference)
	require.True(t, ok)
	require.Equal(t, Version, ref.Fnord.Version)
	require.Len(t, ref.Operations, 8)
}

func TestDocsAll(t *testing.T) {
	full, ok := Docs(DocsAll()).Data().(docsFullDocumentation)
	require.True(t, ok)
	require.Len(t, full.Operations, 8)
	require.Len(t, full.Dialects, 2)
	require.Equal(t, ".bf2", full.Dialects[1].Extension)
	require.NotEmpty(t, full.Errors)
	for _, o := range full.Operations {
		require.NotEmpty(t, o.Description, o.Name)
	}
}

func TestDocsCategory(t *testing.T) {
	require.Contains(t, Docs(DocsCategory("operations")).JSON(), `"count": 8`)
	require.Contains(t, Docs(DocsCategory("dialects")).JSON(), `"brainfnord"`)
	require.Contains(t, Docs(DocsCategory("errors")).JSON(), `"patterns"`)
	require.Contains(t, Docs(DocsCategory("nope")).JSON(), "unknown category: nope")
}

func TestDocsTopic(t *testing.T) {
	tests := []struct {
		topic string
		name  string
	}{
		{"print", "PRINT"},
		{"loop start", "LOOP_START"},
		{"+", "INCREMENT"},
		{"kallisti", "SHIFT_RIGHT"},
		{"23", "LOOP_START"},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			data, ok := Docs(DocsTopic(tt.topic)).Data().(map[string]any)
			require.True(t, ok)
			operation, ok := data["operation"].(docsOperation)
			require.True(t, ok)
			require.Equal(t, tt.name, operation.Name)
		})
	}
	require.Contains(t, Docs(DocsTopic("xyzzy")).JSON(), "unknown topic: xyzzy")
}

func TestDocsValidJSON(t *testing.T) {
	testCases := []struct {
		name string
		opts []DocsOption
	}{
		{"quick", []DocsOption{DocsQuick()}},
		{"all", []DocsOption{DocsAll()}},
		{"category_operations", []DocsOption{DocsCategory("operations")}},
		{"category_dialects", []DocsOption{DocsCategory("dialects")}},
		{"category_errors", []DocsOption{DocsCategory("errors")}},
		{"topic_eris", []DocsOption{DocsTopic("eris")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var result any
			require.NoError(t, json.Unmarshal([]byte(Docs(tc.opts...).JSON()), &result))
		})
	}
}
