package nocap

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/nocap-js/nocap/errors"
	"github.com/nocap-js/nocap/slang"
)

// DocsOption configures documentation retrieval.
type DocsOption func(*docsOptions)

type docsOptions struct {
	category string
	topic    string
	all      bool
}

// DocsCategory filters documentation to a specific category.
// Valid categories: "rules", "aliases", "errors"
func DocsCategory(cat string) DocsOption {
	return func(o *docsOptions) {
		o.category = cat
	}
}

// DocsTopic retrieves documentation for a single slang name.
// Examples: "deadass", "print"
func DocsTopic(topic string) DocsOption {
	return func(o *docsOptions) {
		o.topic = topic
	}
}

// DocsAll returns complete documentation.
func DocsAll() DocsOption {
	return func(o *docsOptions) {
		o.all = true
	}
}

// Documentation provides structured access to the slang catalog.
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

// Version is the current nocap version.
const Version = "0.3.0"

type docsInfo struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	Pipeline    string `json:"pipeline"`
}

type docsRule struct {
	Name        string `json:"name"`
	Signature   string `json:"signature"`
	Placement   string `json:"placement"`
	Description string `json:"description"`
	Example     string `json:"example"`
	Output      string `json:"output"`
}

type docsAlias struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

type docsErrorCode struct {
	Code        string `json:"code"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type docsQuickReference struct {
	Nocap   docsInfo          `json:"nocap"`
	Names   []string          `json:"names"`
	Topics  map[string]string `json:"topics"`
	Next    []string          `json:"next"`
	Aliases []docsAlias       `json:"aliases"`
}

type docsFullDocumentation struct {
	Nocap   docsInfo        `json:"nocap"`
	Rules   []docsRule      `json:"rules"`
	Aliases []docsAlias     `json:"aliases"`
	Errors  []docsErrorCode `json:"errors"`
}

var info = docsInfo{
	Version:     Version,
	Description: "Rewrites slang helpers into standard JavaScript",
	Pipeline:    "source → go-fast parser → slang rewrite → go-fast generator",
}

// Docs returns structured documentation about the slang catalog. Every
// example is run through Transform, so the outputs shown are the ones the
// rewriter produces.
//
//	docs := nocap.Docs(nocap.DocsTopic("spinBack"))
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

func buildQuickReference() docsQuickReference {
	var names []string
	for _, r := range slang.Rules() {
		names = append(names, r.Name)
	}
	return docsQuickReference{
		Nocap: info,
		Names: names,
		Topics: map[string]string{
			"rules":   "Call constructs (deadass, spinBack, vibeCheck, ...)",
			"aliases": "Identifier aliases (print, yap, panic)",
			"errors":  "Diagnostic codes reported by check",
		},
		Next: []string{
			"nocap.Docs(nocap.DocsCategory(\"rules\"))",
			"nocap.Docs(nocap.DocsTopic(\"deadass\"))",
			"nocap.Docs(nocap.DocsAll())",
		},
		Aliases: aliasDocs(),
	}
}

func buildFullDocumentation() docsFullDocumentation {
	return docsFullDocumentation{
		Nocap:   info,
		Rules:   ruleDocs(),
		Aliases: aliasDocs(),
		Errors:  errorDocs(),
	}
}

func buildCategoryDocs(category string) any {
	switch category {
	case "rules":
		rules := ruleDocs()
		return map[string]any{
			"category":    "rules",
			"description": "Call constructs and what they rewrite to",
			"count":       len(rules),
			"rules":       rules,
		}
	case "aliases":
		aliases := aliasDocs()
		return map[string]any{
			"category":    "aliases",
			"description": "Identifiers replaced by member expressions wherever they are used as values",
			"count":       len(aliases),
			"aliases":     aliases,
		}
	case "errors":
		return map[string]any{
			"category":    "errors",
			"description": "Diagnostic codes",
			"codes":       errorDocs(),
		}
	default:
		return map[string]any{
			"error": "unknown category: " + category,
		}
	}
}

func buildTopicDocs(topic string) any {
	if rule, ok := slang.Lookup(topic); ok {
		return map[string]any{
			"type": "rule",
			"rule": ruleDoc(rule),
		}
	}
	if alias, ok := slang.LookupAlias(topic); ok {
		return map[string]any{
			"type":  "alias",
			"alias": docsAlias{Name: alias.Name, Target: alias.Target()},
		}
	}
	result := map[string]any{
		"error": "unknown topic: " + topic,
	}
	if hint := errors.FormatSuggestions(errors.SuggestSimilar(topic, slangNames())); hint != "" {
		result["hint"] = hint
	}
	return result
}

func ruleDocs() []docsRule {
	rules := slang.Rules()
	docs := make([]docsRule, 0, len(rules))
	for _, r := range rules {
		docs = append(docs, ruleDoc(r))
	}
	return docs
}

func ruleDoc(r *slang.Rule) docsRule {
	notes := docsRuleNotes[r.Name]
	doc := docsRule{
		Name:        r.Name,
		Signature:   r.Signature(),
		Placement:   r.Placement(),
		Description: notes.description,
		Example:     notes.example,
	}
	if notes.example != "" {
		if out, err := Transform(context.Background(), notes.example); err == nil {
			doc.Output = out
		}
	}
	return doc
}

func aliasDocs() []docsAlias {
	var docs []docsAlias
	for _, a := range slang.Aliases() {
		docs = append(docs, docsAlias{Name: a.Name, Target: a.Target()})
	}
	return docs
}

func errorDocs() []docsErrorCode {
	codes := []errors.ErrorCode{
		errors.E1001, errors.E1002, errors.E1003,
		errors.E2001, errors.E2002, errors.E2003, errors.E2004,
	}
	docs := make([]docsErrorCode, 0, len(codes))
	for _, c := range codes {
		docs = append(docs, docsErrorCode{
			Code:        c.String(),
			Category:    c.Category(),
			Description: c.Description(),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Code < docs[j].Code })
	return docs
}

var docsRuleNotes = map[string]struct {
	description string
	example     string
}{
	"sus": {
		"Logical negation",
		"ok = sus(done)",
	},
	"lowkey": {
		"Logical and",
		"ok = lowkey(ready, set)",
	},
	"highkey": {
		"Logical or",
		"name = highkey(input, fallback)",
	},
	"weUp": {
		"Immediately invoked arrow function",
		"weUp(() => {\n  start()\n})",
	},
	"asyncAF": {
		"Immediately invoked async arrow function; the arrow is made async",
		"asyncAF(() => {\n  chill(100)\n})",
	},
	"chill": {
		"Awaited timer; the enclosing function is made async",
		"async function pause() {\n  chill(250)\n}",
	},
	"runItBack": {
		"While loop over the callback body",
		"runItBack(queue.length, () => {\n  work(queue.pop())\n})",
	},
	"spinBack": {
		"Counting loop from zero; the callback's first parameter names the counter",
		"spinBack(3, (i) => {\n  print(i)\n})",
	},
	"itsGiving": {
		"Return statement",
		"function answer() {\n  itsGiving(42)\n}",
	},
	"onGod": {
		"Throw statement",
		"onGod(new Error(\"nope\"))",
	},
	"mainCharacter": {
		"Entry point invoked immediately; only at the top level of a program",
		"mainCharacter(() => {\n  print(\"hello\")\n})",
	},
	"deadass": {
		"If statement; following bet and orNah statements become else-if and else branches",
		"deadass(n > 0, () => print(\"positive\"))\nbet(n < 0, () => print(\"negative\"))\norNah(() => print(\"zero\"))",
	},
	"bet": {
		"Else-if branch of the preceding deadass",
		"deadass(a, () => x())\nbet(b, () => y())",
	},
	"orNah": {
		"Else branch of the preceding deadass; ends the chain",
		"deadass(a, () => x())\norNah(() => y())",
	},
	"vibeCheck": {
		"Try/catch; the catch callback's first parameter names the error",
		"vibeCheck(() => risky(), (e) => panic(e))",
	},
	"sayLess": {
		"Finally block of the immediately preceding vibeCheck",
		"vibeCheck(() => risky(), (e) => panic(e))\nsayLess(() => cleanup())",
	},
}
