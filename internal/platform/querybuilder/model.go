package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// modelField is one `db`-tagged exported field of an insert model.
type modelField struct {
	column string
	index  int
}

var modelFieldCache sync.Map // reflect.Type -> []modelField

// InsertModel builds a single-row INSERT from the `db` tags of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return insertRows(table, suffix, model)
}

// InsertModels builds one multi-row INSERT for models. Every element is
// described by the same tags, so the column list is read once.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}
	rows := make([]any, len(models))
	for i := range models {
		rows[i] = models[i]
	}
	return insertRows(table, suffix, rows...)
}

func insertRows(table, suffix string, models ...any) (string, []any, error) {
	builder := InsertInto(table).Suffix(suffix)
	for i, model := range models {
		value, err := structValue(model)
		if err != nil {
			return "", nil, fmt.Errorf("insert row %d: %w", i, err)
		}
		fields, err := fieldsOf(value.Type())
		if err != nil {
			return "", nil, err
		}
		if i == 0 {
			cols := make([]string, len(fields))
			for j, f := range fields {
				cols[j] = f.column
			}
			builder = builder.Columns(cols...)
		}
		vals := make([]any, len(fields))
		for j, f := range fields {
			vals[j] = value.Field(f.index).Interface()
		}
		builder = builder.Values(vals...)
	}
	return builder.ToSQL()
}

func structValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model must be struct, got %s", value.Kind())
	}
	return value, nil
}

func fieldsOf(typ reflect.Type) ([]modelField, error) {
	if cached, ok := modelFieldCache.Load(typ); ok {
		return cached.([]modelField), nil
	}

	fields := make([]modelField, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		fields = append(fields, modelField{column: col, index: i})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}

	modelFieldCache.Store(typ, fields)
	return fields, nil
}
