package utils

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

// SchemaOptions tune GetSchemaFromConfig. The zero value produces compact JSON with inline definitions.
type SchemaOptions struct {
	Title       string
	Description string
	// Mapper overrides the schema of types reflection cannot describe.
	Mapper func(reflect.Type) *jsonschema.Schema
	Indent bool
}

// GetSchemaFromConfig reflects config into a JSON schema with every definition inlined.
func GetSchemaFromConfig(config any, options SchemaOptions) (string, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		Mapper:         options.Mapper,
	}

	schema := reflector.Reflect(config)

	if options.Title != "" {
		schema.Title = options.Title
	}

	if options.Description != "" {
		schema.Description = options.Description
	}

	var (
		data []byte
		err  error
	)

	if options.Indent {
		data, err = json.MarshalIndent(schema, "", "  ")
	} else {
		data, err = json.Marshal(schema)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
