package core

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// unexported constants.
const (
	keyValueParts = 2
	listSeparator = ","
)

// unexported variables.
var (
	errInvalidMapValue       = errors.New("invalid map value, expected key=value")
	errStringSetterFailed    = errors.New("type assertion to Set(string) error failed")
	errTextUnmarshalerFailed = errors.New("type assertion to TextUnmarshaler failed")
	errUnsupportedValueType  = errors.New("unsupported value type")
	//nolint:gochecknoglobals // reflect type for time.Duration
	durationType = reflect.TypeFor[time.Duration]()
	//nolint:gochecknoglobals,inamedparam // reflect type for flag.Value-style setters
	stringSetterType = reflect.TypeFor[interface{ Set(string) error }]()
	//nolint:gochecknoglobals // reflect type for text marshaling
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	//nolint:gochecknoglobals // reflect type for text unmarshaling
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func addressableCustomSetter(fieldVal reflect.Value) (func(string) error, bool) {
	if !fieldVal.CanAddr() {
		return nil, false
	}

	ptr := fieldVal.Addr()
	if ptr.Type().Implements(textUnmarshalerType) {
		return func(value string) error {
			u, ok := ptr.Interface().(encoding.TextUnmarshaler)
			if !ok {
				return errTextUnmarshalerFailed
			}

			return u.UnmarshalText([]byte(value))
		}, true
	}

	if ptr.Type().Implements(stringSetterType) {
		return func(value string) error {
			s, ok := ptr.Interface().(interface{ Set(s string) error })
			if !ok {
				return errStringSetterFailed
			}

			return s.Set(value)
		}, true
	}

	return nil, false
}

// formatValue renders a value the way it would be typed on the command line.
func formatValue(v reflect.Value) string {
	if v.Type().Implements(textMarshalerType) {
		if m, ok := v.Interface().(encoding.TextMarshaler); ok {
			if text, err := m.MarshalText(); err == nil {
				return string(text)
			}
		}
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}

	switch v.Kind() { //nolint:exhaustive // everything else prints with %v
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range v.Len() {
			parts[i] = formatValue(v.Index(i))
		}

		return strings.Join(parts, listSeparator)
	case reflect.Map:
		parts := make([]string, 0, v.Len())

		iter := v.MapRange()
		for iter.Next() {
			parts = append(parts, formatValue(iter.Key())+"="+formatValue(iter.Value()))
		}

		slices.Sort(parts)

		return strings.Join(parts, listSeparator)
	default:
		return fmt.Sprint(v.Interface())
	}
}

// isSupportedType reports whether a command line string can be converted to t.
func isSupportedType(t reflect.Type) bool {
	ptr := reflect.PointerTo(t)
	if ptr.Implements(textUnmarshalerType) || ptr.Implements(stringSetterType) {
		return true
	}

	switch t.Kind() { //nolint:exhaustive // default rejects the rest
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Slice && t.Elem().Kind() != reflect.Map && isSupportedType(t.Elem())
	case reflect.Map:
		return isScalarType(t.Key()) && isScalarType(t.Elem())
	default:
		return false
	}
}

func isCollectionType(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Map
}

func isScalarType(t reflect.Type) bool {
	return t.Kind() != reflect.Slice && t.Kind() != reflect.Map && isSupportedType(t)
}

// setBoolField parses and sets a boolean field.
func setBoolField(fieldVal reflect.Value, value string) error {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parsing bool %q: %w", value, err)
	}

	fieldVal.SetBool(parsed)

	return nil
}

// setFieldByKind handles the type-specific field setting logic.
func setFieldByKind(fieldVal reflect.Value, value string) error {
	switch fieldVal.Kind() { //nolint:exhaustive // default handles unsupported types
	case reflect.String:
		fieldVal.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setIntField(fieldVal, value)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return setUintField(fieldVal, value)
	case reflect.Bool:
		return setBoolField(fieldVal, value)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, fieldVal.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q: %w", value, err)
		}

		fieldVal.SetFloat(v)
	case reflect.Slice:
		return setSliceField(fieldVal, value)
	case reflect.Map:
		return setMapField(fieldVal, value)
	default:
		return fmt.Errorf("%w: %s", errUnsupportedValueType, fieldVal.Type())
	}

	return nil
}

// setFieldFromString converts value to the field's type and stores it.
func setFieldFromString(fieldVal reflect.Value, value string) error {
	if setter, ok := addressableCustomSetter(fieldVal); ok {
		return setter(value)
	}

	return setFieldByKind(fieldVal, value)
}

// setIntField parses and sets an integer field. Durations accept time.ParseDuration syntax.
func setIntField(fieldVal reflect.Value, value string) error {
	if fieldVal.Type() == durationType {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("parsing duration %q: %w", value, err)
		}

		fieldVal.SetInt(int64(parsed))

		return nil
	}

	parsed, err := strconv.ParseInt(value, 10, fieldVal.Type().Bits())
	if err != nil {
		return fmt.Errorf("parsing int %q: %w", value, err)
	}

	fieldVal.SetInt(parsed)

	return nil
}

// setMapField parses comma separated key=value pairs into a map field.
func setMapField(fieldVal reflect.Value, value string) error {
	fieldVal.Set(reflect.MakeMap(fieldVal.Type()))

	if value == "" {
		return nil
	}

	for pair := range strings.SplitSeq(value, listSeparator) {
		parts := strings.SplitN(pair, "=", keyValueParts)
		if len(parts) != keyValueParts {
			return fmt.Errorf("%w: %q", errInvalidMapValue, pair)
		}

		keyVal := reflect.New(fieldVal.Type().Key()).Elem()
		valVal := reflect.New(fieldVal.Type().Elem()).Elem()

		err := setFieldFromString(keyVal, parts[0])
		if err != nil {
			return err
		}

		err = setFieldFromString(valVal, parts[1])
		if err != nil {
			return err
		}

		fieldVal.SetMapIndex(keyVal, valVal)
	}

	return nil
}

// setSliceField parses a comma separated list into a slice field.
func setSliceField(fieldVal reflect.Value, value string) error {
	fieldVal.Set(reflect.MakeSlice(fieldVal.Type(), 0, 0))

	if value == "" {
		return nil
	}

	for item := range strings.SplitSeq(value, listSeparator) {
		elem := reflect.New(fieldVal.Type().Elem()).Elem()

		err := setFieldFromString(elem, item)
		if err != nil {
			return err
		}

		fieldVal.Set(reflect.Append(fieldVal, elem))
	}

	return nil
}

// setUintField parses and sets an unsigned integer field.
func setUintField(fieldVal reflect.Value, value string) error {
	parsed, err := strconv.ParseUint(value, 10, fieldVal.Type().Bits())
	if err != nil {
		return fmt.Errorf("parsing uint %q: %w", value, err)
	}

	fieldVal.SetUint(parsed)

	return nil
}
