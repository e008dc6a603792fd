package jsonapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/git-pkgs/pypi/internal/core"
)

// object is one JSON object of the document, addressed by its path.
type object struct {
	path   string
	fields map[string]json.RawMessage
}

func decodeObject(path string, raw json.RawMessage) (object, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return object{}, &core.SchemaViolationError{Path: path, Reason: "expected an object"}
	}
	return object{path: path, fields: fields}, nil
}

func indexPath(key string, i int) string {
	return fmt.Sprintf("%s[%d]", key, i)
}

func (o object) at(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// required decodes key into v. A missing key or a value of the wrong JSON
// type is a schema violation. JSON null is accepted only when v points at a
// pointer, slice or map, which then stays nil.
func (o object) required(key string, v any) error {
	raw, ok := o.fields[key]
	if !ok {
		return &core.SchemaViolationError{Path: o.at(key), Reason: "missing required key"}
	}
	if isNull(raw) && !nullable(v) {
		return &core.SchemaViolationError{Path: o.at(key), Reason: fmt.Sprintf("expected %s, got null", kind(v))}
	}
	return o.decode(key, raw, v)
}

func nullable(v any) bool {
	switch reflect.TypeOf(v).Elem().Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		return true
	default:
		return false
	}
}

// optional decodes key into v when the key is present.
func (o object) optional(key string, v any) error {
	raw, ok := o.fields[key]
	if !ok {
		return nil
	}
	return o.decode(key, raw, v)
}

func (o object) decode(key string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &core.SchemaViolationError{Path: o.at(key), Reason: fmt.Sprintf("expected %s", kind(v)), Err: err}
	}
	return nil
}

// child returns the nested object stored under key.
func (o object) child(key string) (object, error) {
	raw, ok := o.fields[key]
	if !ok {
		return object{}, &core.SchemaViolationError{Path: o.at(key), Reason: "missing required key"}
	}
	return decodeObject(o.at(key), raw)
}

// array returns the elements of the array stored under key.
func (o object) array(key string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := o.required(key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, &core.SchemaViolationError{Path: o.at(key), Reason: "expected array, got null"}
	}
	return items, nil
}

// timestamp parses a required, non-null timestamp with parse.
func (o object) timestamp(key string, parse func(string) (time.Time, error)) (time.Time, error) {
	var s *string
	if err := o.required(key, &s); err != nil {
		return time.Time{}, err
	}
	if s == nil {
		return time.Time{}, &core.SchemaViolationError{Path: o.at(key), Reason: "expected timestamp, got null"}
	}
	t, err := parse(*s)
	if err != nil {
		return time.Time{}, &core.SchemaViolationError{Path: o.at(key), Reason: "invalid timestamp", Err: err}
	}
	return t, nil
}

// nullableTimestamp parses a required timestamp that may be null.
func (o object) nullableTimestamp(key string, parse func(string) (time.Time, error)) (*time.Time, error) {
	var s *string
	if err := o.required(key, &s); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	t, err := parse(*s)
	if err != nil {
		return nil, &core.SchemaViolationError{Path: o.at(key), Reason: "invalid timestamp", Err: err}
	}
	return &t, nil
}

func kind(v any) string {
	switch v.(type) {
	case *string, **string:
		return "string"
	case *bool:
		return "boolean"
	case *int, *int64:
		return "integer"
	case *[]string:
		return "array of strings"
	case *map[string]string:
		return "object of strings"
	case *[]json.RawMessage:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
