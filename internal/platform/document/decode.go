package document

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

var jsonAPI = sonic.Config{UseNumber: true}.Froze()

// Parse decodes a JSON payload. Integral numbers keep full int64 precision.
func Parse(data []byte) (Value, error) {
	var raw any
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("decode document: %w", err)
	}
	return FromAny(raw), nil
}

// MarshalJSON encodes the value with the same codec used by Parse.
func (v Value) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(v.Any())
}

// FromAny converts decoded JSON or driver values into a Value. Unsupported
// types fall back to reflection over maps and slices; anything else is null.
func FromAny(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return typed
	case bool:
		return Bool(typed)
	case string:
		return String(typed)
	case json.Number:
		return fromNumber(string(typed))
	case int:
		return Int(int64(typed))
	case int8:
		return Int(int64(typed))
	case int16:
		return Int(int64(typed))
	case int32:
		return Int(int64(typed))
	case int64:
		return Int(typed)
	case uint8:
		return Int(int64(typed))
	case uint16:
		return Int(int64(typed))
	case uint32:
		return Int(int64(typed))
	case float32:
		return Float(float64(typed))
	case float64:
		return Float(typed)
	case time.Time:
		return Time(typed)
	case map[string]any:
		fields := make(map[string]Value, len(typed))
		for key, item := range typed {
			fields[key] = FromAny(item)
		}
		return Map(fields)
	case []any:
		items := make([]Value, len(typed))
		for i, item := range typed {
			items[i] = FromAny(item)
		}
		return List(items...)
	}
	return fromReflect(reflect.ValueOf(raw))
}

func fromNumber(raw string) Value {
	if out, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Int(out)
	}
	if out, err := strconv.ParseFloat(raw, 64); err == nil {
		return Float(out)
	}
	return String(raw)
}

func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Value{}
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}
		}
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = FromAny(iter.Value().Interface())
		}
		return Map(fields)
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = FromAny(rv.Index(i).Interface())
		}
		return List(items...)
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return Int(int64(rv.Uint()))
	case reflect.String:
		return String(rv.String())
	default:
		return Value{}
	}
}
