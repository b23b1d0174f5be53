package savegame

import (
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/record.schema.json
var recordSchemaJSON string

var recordSchema = jsonschema.MustCompileString("record.schema.json", recordSchemaJSON)

// Validate checks the structure of a migrated record. Unknown keys are
// allowed; known keys must have the right shape.
func Validate(r Record) error {
	if err := recordSchema.Validate(map[string]any(r)); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
