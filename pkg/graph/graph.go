package graph

import (
	"errors"
	"fmt"
)

// FailureMessage is the fixed text returned to callers when a reply cannot be
// turned into a document. The raw reply is never part of it.
const FailureMessage = "Invalid schema from Gemini"

// ErrInvalidSchema matches every *NormalizationFailure via errors.Is.
var ErrInvalidSchema = errors.New("invalid schema")

// Node is one vertex of a generated graph. Width and height of a rendered node
// are fixed by the frontend and only communicated through the system prompt.
type Node struct {
	NodeID      int64   `json:"node_id" jsonschema:"description=Identifier of the node"`
	X           float64 `json:"x" jsonschema:"description=Horizontal position in px"`
	Y           float64 `json:"y" jsonschema:"description=Vertical position in px"`
	Text        string  `json:"text" jsonschema:"description=Label displayed on the node"`
	Connected   []int64 `json:"connected" jsonschema:"description=Identifiers of the nodes this node links to"`
	Information string  `json:"information" jsonschema:"description=Free text details about the node"`
}

// Document is a decoded reply as produced by encoding/json with UseNumber.
// It is emitted exactly as decoded and usually holds a []any of node objects.
type Document = any

// NormalizationFailure is produced when a reply could not be decoded, or when
// strict validation rejected it. Raw holds the reply for operators only.
type NormalizationFailure struct {
	Message    string
	Raw        string
	Violations []Violation
}

func (f *NormalizationFailure) Error() string {
	if len(f.Violations) == 0 {
		return f.Message
	}
	return fmt.Sprintf("%s: %d violation(s), first: %s", f.Message, len(f.Violations), f.Violations[0])
}

func (f *NormalizationFailure) Is(target error) bool {
	return target == ErrInvalidSchema
}

// Outcome is the result of one generation. Exactly one of Document, Failure
// or Err is meaningful: Err carries an *ai.InvocationError from the provider.
type Outcome struct {
	Document Document
	Failure  *NormalizationFailure
	Err      error
}

// OK reports whether the outcome holds a document.
func (o Outcome) OK() bool {
	return o.Failure == nil && o.Err == nil
}
