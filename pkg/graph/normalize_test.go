package graph

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const (
	rootNode = `{"node_id":1,"x":0,"y":0,"text":"Root","connected":[],"information":"r"}`
	nodeList = `[{"node_id":1,"x":0,"y":0,"text":"Root","connected":[2],"information":"root"},` +
		`{"node_id":2,"x":300,"y":150.5,"text":"Leaf","connected":[],"information":"leaf"}]`
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	doc, ok := decode(s)
	if !ok {
		t.Fatalf("test input is not valid JSON: %q", s)
	}
	return doc
}

func TestNormalizePassThrough(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "node array", raw: nodeList},
		{name: "empty array", raw: `[]`},
		{name: "surrounding whitespace", raw: "\n  " + nodeList + "\n"},
		{name: "array of non nodes", raw: `[1,"two",null]`},
		{name: "scalar", raw: `42`},
		{name: "string", raw: `"just text"`},
		{name: "large id", raw: `[{"node_id":12345678901234567890}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(tt.raw)
			if !out.OK() {
				t.Fatalf("expected success, got %v", out.Failure)
			}
			if want := mustDecode(t, tt.raw); !reflect.DeepEqual(out.Document, want) {
				t.Fatalf("document mismatch\n got: %#v\nwant: %#v", out.Document, want)
			}
		})
	}
}

func TestNormalizeKeepsNumbersVerbatim(t *testing.T) {
	out := Normalize(`[{"node_id":12345678901234567890,"x":1.50}]`)
	if !out.OK() {
		t.Fatalf("expected success, got %v", out.Failure)
	}
	b, err := json.Marshal(out.Document)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(b); got != `[{"node_id":12345678901234567890,"x":1.50}]` {
		t.Fatalf("numbers changed: %s", got)
	}
}

func TestNormalizeWrapsBareObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "object", raw: rootNode},
		{name: "object with whitespace", raw: "  \t" + rootNode + "\r\n"},
		{name: "empty object", raw: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(tt.raw)
			if !out.OK() {
				t.Fatalf("expected success, got %v", out.Failure)
			}
			arr, ok := out.Document.([]any)
			if !ok || len(arr) != 1 {
				t.Fatalf("expected one element array, got %#v", out.Document)
			}
			if want := mustDecode(t, strings.TrimSpace(tt.raw)); !reflect.DeepEqual(arr[0], want) {
				t.Fatalf("element mismatch\n got: %#v\nwant: %#v", arr[0], want)
			}
		})
	}
}

func TestNormalizeFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace", raw: " \n\t "},
		{name: "truncated", raw: `[{"node_id":1,"x":0`},
		{name: "fenced array", raw: "```json\n" + nodeList + "\n```"},
		{name: "fenced without tag", raw: "```\n" + nodeList + "\n```"},
		{name: "prose before", raw: "Here is your graph: " + nodeList},
		{name: "prose after", raw: nodeList + " Hope this helps!"},
		{name: "two values", raw: `[] []`},
		{name: "object with prose inside braces", raw: `{ this is not json }`},
		{name: "trailing comma", raw: `[{"node_id":1},]`},
		{name: "single quotes", raw: `[{'node_id':1}]`},
		{name: "plain prose", raw: "I cannot help with that."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(tt.raw)
			if out.OK() {
				t.Fatalf("expected failure, got %#v", out.Document)
			}
			if out.Err != nil {
				t.Fatalf("normalizer must not report invocation errors: %v", out.Err)
			}
			if out.Failure.Message != FailureMessage {
				t.Fatalf("message = %q", out.Failure.Message)
			}
			if out.Failure.Raw != tt.raw {
				t.Fatalf("raw text not retained: %q", out.Failure.Raw)
			}
			if !errors.Is(out.Failure, ErrInvalidSchema) {
				t.Fatalf("failure does not match ErrInvalidSchema")
			}
		})
	}
}

func TestNormalizeNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"\x00\x01\x02",
		"\xff\xfe\xfd",
		"{",
		"}",
		"{}}",
		"{{}",
		"[",
		"]",
		`"`,
		`{"a":"\xff"}`,
		strings.Repeat("[", 2000),
		strings.Repeat("[", 20000) + strings.Repeat("]", 20000),
		"```",
		"null",
	}

	for _, mode := range []Normalizer{{}, {Mode: ModeLenient}, {Strict: true}, {Mode: ModeLenient, Strict: true}} {
		for _, in := range inputs {
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("normalizer %+v panicked on %q: %v", mode, in, r)
					}
				}()
				out := mode.Normalize(in)
				if out.OK() == (out.Failure != nil) {
					t.Fatalf("outcome for %q is not tagged: %#v", in, out)
				}
			}()
		}
	}
}

func TestNormalizeIdempotentOnSuccess(t *testing.T) {
	for _, raw := range []string{nodeList, rootNode, `[]`, `{"node_id":7}`} {
		first := Normalize(raw)
		if !first.OK() {
			t.Fatalf("expected success for %q", raw)
		}
		b, err := json.Marshal(first.Document)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		second := Normalize(string(b))
		if !second.OK() {
			t.Fatalf("re-normalizing %s failed", b)
		}
		if !reflect.DeepEqual(first.Document, second.Document) {
			t.Fatalf("not idempotent\nfirst:  %#v\nsecond: %#v", first.Document, second.Document)
		}
	}
}

func TestLenientNormalizer(t *testing.T) {
	n := Normalizer{Mode: ModeLenient}
	want := mustDecode(t, nodeList)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "fenced json", raw: "```json\n" + nodeList + "\n```"},
		{name: "fenced plain", raw: "```\n" + nodeList + "\n```"},
		{name: "trailing comma", raw: strings.TrimSuffix(nodeList, "]") + ",]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := n.Normalize(tt.raw)
			if !out.OK() {
				t.Fatalf("expected success, got %v", out.Failure)
			}
			if !reflect.DeepEqual(out.Document, want) {
				t.Fatalf("document mismatch\n got: %#v\nwant: %#v", out.Document, want)
			}
		})
	}

	t.Run("fenced bare object is wrapped", func(t *testing.T) {
		out := n.Normalize("```json\n" + rootNode + "\n```")
		if !out.OK() {
			t.Fatalf("expected success, got %v", out.Failure)
		}
		arr, ok := out.Document.([]any)
		if !ok || len(arr) != 1 {
			t.Fatalf("expected one element array, got %#v", out.Document)
		}
	})

	t.Run("valid input is untouched", func(t *testing.T) {
		out := n.Normalize(nodeList)
		if !out.OK() || !reflect.DeepEqual(out.Document, want) {
			t.Fatalf("lenient mode changed a valid document: %#v", out)
		}
	})
}

func TestStrictNormalizer(t *testing.T) {
	n := Normalizer{Strict: true}

	if out := n.Normalize(nodeList); !out.OK() {
		t.Fatalf("complete nodes rejected: %v", out.Failure)
	}
	if out := n.Normalize(rootNode); !out.OK() {
		t.Fatalf("wrapped complete node rejected: %v", out.Failure)
	}

	out := n.Normalize(`[{"node_id":1,"x":0,"y":0,"text":"Root"}]`)
	if out.OK() {
		t.Fatalf("expected strict failure")
	}
	if out.Failure.Message != FailureMessage {
		t.Fatalf("message = %q", out.Failure.Message)
	}
	if len(out.Failure.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", out.Failure.Violations)
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"":          ModeBaseline,
		"baseline":  ModeBaseline,
		"lenient":   ModeLenient,
		" Lenient ": ModeLenient,
		"v2":        ModeLenient,
		"bogus":     ModeBaseline,
	}
	for in, want := range tests {
		if got := ParseMode(in); got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
}
