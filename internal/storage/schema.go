package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const stateSchemaURL = "https://habitd.local/schema/state.json"

//go:embed schema/state.schema.json
var stateSchemaJSON []byte

var (
	stateSchemaOnce sync.Once
	stateSchema     *jsonschema.Schema
	stateSchemaErr  error
)

// SchemaError reports the first leaf failure of a schema validation.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "storage: invalid state: " + e.Message
	}
	return fmt.Sprintf("storage: invalid state at %s: %s", e.Path, e.Message)
}

func compiledStateSchema() (*jsonschema.Schema, error) {
	stateSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(stateSchemaURL, bytes.NewReader(stateSchemaJSON)); err != nil {
			stateSchemaErr = fmt.Errorf("add state schema: %w", err)
			return
		}
		stateSchema, stateSchemaErr = compiler.Compile(stateSchemaURL)
		if stateSchemaErr != nil {
			stateSchemaErr = fmt.Errorf("compile state schema: %w", stateSchemaErr)
		}
	})
	return stateSchema, stateSchemaErr
}

// Validate checks a raw state document against the embedded schema.
func Validate(data []byte) error {
	schema, err := compiledStateSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return schemaError(err)
	}
	return nil
}

func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaError{Message: err.Error()}
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	return &SchemaError{
		Path:    pointerPath(leaf.InstanceLocation),
		Message: leaf.Message,
	}
}

// pointerPath turns "/habits/0/label" into "habits[0].label".
func pointerPath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(pointer, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
