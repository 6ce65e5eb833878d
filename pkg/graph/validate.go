package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// Violation describes why one element of a document failed strict validation.
// Index is -1 for problems with the document as a whole.
type Violation struct {
	Index  int    `json:"index"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	if v.Field == "" {
		return fmt.Sprintf("[%d] %s", v.Index, v.Reason)
	}
	return fmt.Sprintf("[%d].%s %s", v.Index, v.Field, v.Reason)
}

// strictNode mirrors Node with pointer fields so absent keys can be told
// apart from zero values.
type strictNode struct {
	NodeID      *int64   `json:"node_id" validate:"required"`
	X           *float64 `json:"x" validate:"required"`
	Y           *float64 `json:"y" validate:"required"`
	Text        *string  `json:"text" validate:"required"`
	Connected   *[]int64 `json:"connected" validate:"required"`
	Information *string  `json:"information" validate:"required"`
}

var nodeValidator = newNodeValidator()

func newNodeValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that doc is an array of objects that each carry all six
// Node fields with the right types, and that node ids are unique. Dangling
// entries in connected are allowed.
func Validate(doc Document) []Violation {
	items, ok := doc.([]any)
	if !ok {
		return []Violation{{Index: -1, Reason: "document is not an array"}}
	}

	var violations []Violation
	seen := make(map[int64]int, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			violations = append(violations, Violation{Index: i, Reason: "element is not an object"})
			continue
		}

		node, err := decodeStrict(obj)
		if err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				violations = append(violations, Violation{Index: i, Field: typeErr.Field, Reason: "has wrong type " + typeErr.Value})
			} else {
				violations = append(violations, Violation{Index: i, Reason: err.Error()})
			}
			continue
		}

		if err := nodeValidator.Struct(node); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				violations = append(violations, Violation{Index: i, Reason: err.Error()})
				continue
			}
			for _, fe := range fieldErrs {
				violations = append(violations, Violation{Index: i, Field: fe.Field(), Reason: "is " + fe.Tag()})
			}
			continue
		}

		if first, dup := seen[*node.NodeID]; dup {
			violations = append(violations, Violation{
				Index:  i,
				Field:  "node_id",
				Reason: fmt.Sprintf("duplicates element %d", first),
			})
			continue
		}
		seen[*node.NodeID] = i
	}
	return violations
}

func decodeStrict(obj map[string]any) (strictNode, error) {
	var node strictNode
	b, err := json.Marshal(obj)
	if err != nil {
		return node, err
	}
	err = json.Unmarshal(b, &node)
	return node, err
}
