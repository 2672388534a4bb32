package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// statLineFieldMap caches JSON tag -> struct field index mappings
var (
	statLineFieldMap     map[string]int
	statLineFieldMapOnce sync.Once
)

func getStatLineFieldMap() map[string]int {
	statLineFieldMapOnce.Do(func() {
		t := reflect.TypeOf(StatLine{})
		statLineFieldMap = make(map[string]int, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			name := strings.Split(tag, ",")[0]
			statLineFieldMap[name] = i
		}
	})
	return statLineFieldMap
}

// UnmarshalJSON implements flexible JSON unmarshaling that accepts both
// string-encoded and native JSON types. Some provider exports serialize
// every stat as a quoted string ("28.5"); this coerces values to the
// correct Go types transparently.
func (s *StatLine) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias StatLine
	a := (*Alias)(s)

	// Fast path: try standard unmarshal (works when all types match natively)
	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}

	// Slow path: field-by-field with string-to-native coercion
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	fieldMap := getStatLineFieldMap()
	v := reflect.ValueOf(a).Elem()

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		// Try direct unmarshal first
		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// Value is a JSON string but target is numeric, coerce
		if len(rawVal) > 1 && rawVal[0] == '"' {
			var str string
			if err := json.Unmarshal(rawVal, &str); err != nil {
				continue
			}
			if str == "" {
				continue
			}
			coerceStringToField(fv, str)
		}
	}

	return nil
}

// coerceStringToField converts a string value to the field's native type.
func coerceStringToField(fv reflect.Value, s string) {
	switch fv.Kind() {
	case reflect.Float32, reflect.Float64:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetFloat(n)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// ParseFloat handles "7.0" -> truncate to int
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetInt(int64(n))
		}
	case reflect.String:
		fv.SetString(s)
	}
}
