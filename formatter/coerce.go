package formatter

import (
	"encoding"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/thrustcurve/dataformat/utils"
)

var numericPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// Coerce converts a value to the JSON-native type it stands for. The rules
// apply in this order:
//
//   - absent values become nil (null)
//   - strings of digits with an optional fraction become float64, so "007" is 7
//   - the strings "true" and "false" become booleans
//   - time.Time becomes an ISO-8601 string in UTC
//   - NaN and infinite numbers become nil
//   - slices and arrays are coerced element by element
//   - Fields and maps with string keys become objects, coerced value by value
//
// Values that marshal themselves, such as xid.ID, are kept as they are so the
// encoder writes their own form.
//
// Anything else is returned unchanged.
func Coerce(value any) any {
	if absent(value) {
		return nil
	}
	value = deref(value)

	switch v := value.(type) {
	case string:
		return coerceString(v)
	case time.Time:
		return utils.Iso8601(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil
		}
		return v
	case []byte, json.Marshaler, encoding.TextMarshaler:
		return v
	}

	if fields, ok := fieldsOf(value); ok {
		o := newObject()
		for _, f := range fields {
			o.set(f.Name, Coerce(f.Value))
		}
		return o
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Coerce(rv.Index(i).Interface())
		}
		return out
	}
	return value
}

func coerceString(s string) any {
	if numericPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) {
			return f
		}
		return s
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
