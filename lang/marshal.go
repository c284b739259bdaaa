package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// MarshalJSON implements json.Marshaler for Value.
func (v *Value) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case TypeInteger:
		return strconv.AppendInt(nil, v.Int, 10), nil

	case TypeText:
		return json.Marshal(v.Text)

	case TypeRecord:
		return v.Record.MarshalJSON()

	default:
		return nil, fmt.Errorf("unknown value type %d", v.Type)
	}
}

// MarshalJSON implements json.Marshaler for Record.
//
// The standard library serializes maps with sorted keys, so the ordered
// object is assembled by hand to preserve field insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	first := true

	for name, val := range r.All() {
		if !first {
			buf.WriteByte(',')
		}

		first = false

		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		data, err := val.MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.Write(data)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// FormatJSON writes the environment as a JSON object to the writer. Key order
// matches constant insertion order, numbers render as JSON numbers, text as
// JSON strings, and records as nested JSON objects.
func (env *Environment) FormatJSON(
	_ context.Context,
	w io.Writer,
	indent int,
) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(env, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(env)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the environment as YAML to the writer, preserving
// constant insertion order.
func (env *Environment) FormatYAML(
	ctx context.Context,
	w io.Writer,
	indent int,
) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, env.toMapSlice(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// toMapSlice converts the record to an order-preserving yaml.MapSlice.
func (r *Record) toMapSlice() yaml.MapSlice {
	result := make(yaml.MapSlice, 0, r.Len())

	for name, val := range r.All() {
		result = append(result, yaml.MapItem{Key: name, Value: val.toNative()})
	}

	return result
}

// toNative converts a Value to a Go value suitable for YAML encoding.
func (v *Value) toNative() any {
	switch v.Type {
	case TypeInteger:
		return v.Int

	case TypeText:
		return v.Text

	case TypeRecord:
		return v.Record.toMapSlice()

	default:
		return nil
	}
}

// ToMap converts the record to a native Go map structure. Field order is not
// preserved; use MarshalJSON or toMapSlice where order matters.
func (r *Record) ToMap() map[string]any {
	result := make(map[string]any, r.Len())

	for name, val := range r.All() {
		if val.Type == TypeRecord {
			result[name] = val.Record.ToMap()
		} else {
			result[name] = val.toNative()
		}
	}

	return result
}
