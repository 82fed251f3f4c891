package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel starts an insert from the db-tagged exported fields of model.
func InsertModel(table string, model any) (*InsertBuilder, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return nil, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...), nil
}

// ModelColumns lists the db columns of model, skipping the excluded ones.
func ModelColumns(model any, exclude ...string) ([]string, error) {
	cols, _, err := columnsAndValuesFromModel(model)
	if err != nil {
		return nil, err
	}
	if len(exclude) == 0 {
		return cols, nil
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, col := range exclude {
		skip[col] = struct{}{}
	}
	out := cols[:0]
	for _, col := range cols {
		if _, ok := skip[col]; ok {
			continue
		}
		out = append(out, col)
	}
	return out, nil
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
