package ngram

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "model.schema.json"

const modelSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["metadata", "unigrams", "bigrams"],
  "properties": {
    "metadata": {
      "type": "object",
      "properties": {
        "corpus_size": {"type": "integer", "minimum": 0},
        "unique_unigrams": {"type": "integer", "minimum": 0},
        "unique_bigrams": {"type": "integer", "minimum": 0},
        "min_freq": {"type": "integer", "minimum": 0},
        "source": {"type": "string"}
      }
    },
    "unigrams": {
      "type": "object",
      "propertyNames": {"minLength": 1, "maxLength": 1},
      "additionalProperties": {"type": "integer", "minimum": 0}
    },
    "bigrams": {
      "type": "object",
      "propertyNames": {"pattern": "^[^|]\\|[^|]$"},
      "additionalProperties": {"type": "integer", "minimum": 0}
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(modelSchema)); err != nil {
			schemaErr = fmt.Errorf("add model schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile model schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

func validateDocument(doc any) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
