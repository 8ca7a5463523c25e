// internal/server/validator.go
package server

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"
)

// chatSchema rejects anything other than exactly user_id and message, both
// non-empty strings. Malformed requests must fail loudly rather than fall
// back to defaults.
const chatSchema = `{
	"type": "object",
	"properties": {
		"user_id": {"type": "string", "minLength": 1},
		"message": {"type": "string"}
	},
	"required": ["user_id", "message"],
	"additionalProperties": false
}`

type chatValidator struct {
	schema *gojsonschema.Schema
}

func newChatValidator() (*chatValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(chatSchema))
	if err != nil {
		return nil, err
	}
	return &chatValidator{schema: schema}, nil
}

// parse validates the raw body against the chat schema and decodes it. The
// returned slice holds human-readable violations; a non-nil error means the
// body was not JSON at all.
func (v *chatValidator) parse(body []byte) (*chatRequest, []string, error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, nil, err
	}

	if !result.Valid() {
		verrs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			verrs = append(verrs, e.String())
		}
		return nil, verrs, nil
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, nil, err
	}
	return &req, nil, nil
}
