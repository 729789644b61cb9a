package nocap

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/nocap-js/nocap/slang"
)

func TestDocs_Default(t *testing.T) {
	// Default returns quick reference
	j := Docs().JSON()
	assert.True(t, strings.Contains(j, `"version"`))
	assert.True(t, strings.Contains(j, `"topics"`))
	assert.True(t, strings.Contains(j, `"deadass"`))
}

func TestDocs_Data(t *testing.T) {
	ref, ok := Docs().Data().(docsQuickReference)
	assert.True(t, ok)
	assert.Equal(t, ref.Nocap.Version, Version)
	assert.Len(t, ref.Aliases, 3)
}

func TestDocs_All(t *testing.T) {
	full, ok := Docs(DocsAll()).Data().(docsFullDocumentation)
	assert.True(t, ok)
	assert.Len(t, full.Rules, len(slang.Rules()))
	assert.Len(t, full.Errors, 7)
}

func TestDocs_EveryRuleHasExample(t *testing.T) {
	for _, doc := range ruleDocs() {
		assert.True(t, doc.Description != "", "rule %s", doc.Name)
		assert.True(t, doc.Example != "", "rule %s", doc.Name)
		assert.True(t, doc.Output != "", "rule %s", doc.Name)
		assert.False(t, strings.Contains(doc.Output, doc.Name+"("), "rule %s", doc.Name)
	}
}

func TestDocs_Topic_Rule(t *testing.T) {
	data := Docs(DocsTopic("spinBack")).Data().(map[string]any)
	assert.Equal(t, data["type"], "rule")
	rule := data["rule"].(docsRule)
	assert.Equal(t, rule.Signature, "spinBack(number literal, arrow function)")
	assert.Contains(t, rule.Output, "for (let i = 0; i < 3; i++)")
	assert.Contains(t, rule.Output, "console.log(i)")

	data = Docs(DocsTopic("itsGiving")).Data().(map[string]any)
	rule = data["rule"].(docsRule)
	assert.Equal(t, rule.Placement, "a statement inside a function")
	assert.Contains(t, rule.Output, "return 42")
}

func TestDocs_Topic_Alias(t *testing.T) {
	j := Docs(DocsTopic("yap")).JSON()
	assert.True(t, strings.Contains(j, `"alias"`))
	assert.True(t, strings.Contains(j, "console.warn"))
}

func TestDocs_Topic_Unknown(t *testing.T) {
	data := Docs(DocsTopic("deadas")).Data().(map[string]any)
	assert.Equal(t, data["error"], "unknown topic: deadas")
	assert.Equal(t, data["hint"], "did you mean 'deadass'?")
}

func TestDocs_ValidJSON(t *testing.T) {
	// Test that all doc modes produce valid JSON
	testCases := []struct {
		name string
		opts []DocsOption
	}{
		{"quick", nil},
		{"all", []DocsOption{DocsAll()}},
		{"category_rules", []DocsOption{DocsCategory("rules")}},
		{"category_aliases", []DocsOption{DocsCategory("aliases")}},
		{"category_errors", []DocsOption{DocsCategory("errors")}},
		{"category_unknown", []DocsOption{DocsCategory("nope")}},
		{"topic_rule", []DocsOption{DocsTopic("vibeCheck")}},
		{"topic_alias", []DocsOption{DocsTopic("print")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var result any
			err := json.Unmarshal([]byte(Docs(tc.opts...).JSON()), &result)
			assert.Nil(t, err, "should produce valid JSON for %s", tc.name)
		})
	}
}
