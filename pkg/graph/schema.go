package graph

import (
	"github.com/invopop/jsonschema"

	"github.com/nodegen/backend/pkg/ai"
)

// DocumentSchema returns the JSON Schema of a document: an array of Node.
func DocumentSchema() *jsonschema.Schema {
	return ai.GenerateSchema([]Node{})
}
