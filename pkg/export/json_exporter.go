package export

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// JSONExporter renders record slices as a pretty-printed JSON array.
type JSONExporter struct {
	indent string
}

// NewJSONExporter builds a JSON exporter using four-space indentation.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{indent: "    "}
}

// Render encodes records. A nil slice is written as an empty array.
func (e *JSONExporter) Render(records interface{}) ([]byte, error) {
	if records == nil {
		return []byte("[]"), nil
	}
	if v := reflect.ValueOf(records); v.Kind() == reflect.Slice && v.IsNil() {
		return []byte("[]"), nil
	}
	payload, err := json.MarshalIndent(records, "", e.indent)
	if err != nil {
		return nil, fmt.Errorf("encode json export: %w", err)
	}
	return payload, nil
}
