package storefront

import (
	"github.com/xeipuuv/gojsonschema"
)

// List responses are validated before normalization so a surprising
// payload becomes a reported unexpected_shape instead of a crash or a
// half-rendered list.
const (
	productListSchema = `{
		"type": "array",
		"items": { "type": "object" }
	}`

	cartListSchema = `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["Product", "Qty"],
			"properties": {
				"Product": { "type": "object" },
				"Qty":     { "type": "integer" }
			}
		}
	}`
)

// validateShape checks a raw response document against a JSON schema
func validateShape(schema string, doc []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		// not even parseable JSON
		return NewError(KindUnexpectedShape, "response is not valid JSON")
	}
	if !result.Valid() {
		msg := "response has unexpected shape"
		if errs := result.Errors(); len(errs) > 0 {
			msg = msg + ": " + errs[0].String()
		}
		return NewError(KindUnexpectedShape, msg)
	}
	return nil
}
