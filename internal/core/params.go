package core

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Parameter is one declared parameter of a target, in declaration order.
type Parameter struct {
	Name     string
	Position int
	// HasDefault distinguishes "no default" from a default equal to the zero value.
	HasDefault  bool
	Default     any
	DefaultText string
	Type        reflect.Type

	field   string
	index   []int
	tagDesc string
	hasDesc bool
}

// ParameterExtractor yields the parameters of a bound target. It is the only
// component that reads Go type information.
type ParameterExtractor interface {
	Parameters() ([]Parameter, error)
}

// Parameters implements ParameterExtractor.
func (t *target) Parameters() ([]Parameter, error) {
	if t.params == nil {
		return nil, nil
	}

	var params []Parameter

	err := collectParameters(t.params, t.prototype, t.kind == classTarget, nil, &params)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(params))

	for i := range params {
		params[i].Position = i

		name := params[i].Name
		if previous, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %q from fields %s and %s", ErrDuplicateParameter, name, previous, params[i].field)
		}

		if _, ok := reservedNames[name]; ok {
			return nil, fmt.Errorf("%w: %q from field %s conflicts with a built-in flag",
				ErrDuplicateParameter, name, params[i].field)
		}

		seen[name] = params[i].field
	}

	return params, nil
}

// unexported constants.
const (
	optTag     = "opt"
	tagDefault = "default"
	tagDesc    = "desc"
	tagName    = "name"
	tagSkip    = "-"
)

// unexported variables.
var (
	//nolint:gochecknoglobals // names taken by the built-in help and version flags
	reservedNames = map[string]struct{}{"help": {}, "version": {}, "h": {}, "v": {}}
)

// fieldTag is a parsed `opt:"..."` tag.
type fieldTag struct {
	name       string
	hasDefault bool
	defaultVal string
	hasDesc    bool
	desc       string
	skip       bool
}

// camelToSnake converts an exported Go field name to a parameter name.
func camelToSnake(s string) string {
	var result strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			// fooBar -> foo_bar, APIServer -> api_server
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				result.WriteRune('_')
			}
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// collectParameters appends the parameters declared by typ, flattening embedded structs.
func collectParameters(typ reflect.Type, prototype reflect.Value, class bool, index []int, out *[]Parameter) error {
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := parseFieldTag(field.Tag.Get(optTag))
		if tag.skip {
			continue
		}

		fieldIndex := append(append([]int(nil), index...), i)

		var fieldProto reflect.Value
		if prototype.IsValid() {
			fieldProto = prototype.Field(i)
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct && tag.name == "" {
			err := collectParameters(field.Type, fieldProto, class, fieldIndex, out)
			if err != nil {
				return err
			}

			continue
		}

		param, err := newParameter(field, tag, fieldIndex, fieldProto, class)
		if err != nil {
			return err
		}

		*out = append(*out, param)
	}

	return nil
}

func newParameter(
	field reflect.StructField,
	tag fieldTag,
	index []int,
	prototype reflect.Value,
	class bool,
) (Parameter, error) {
	if !isSupportedType(field.Type) {
		return Parameter{}, fmt.Errorf("%w: field %s has type %s", ErrUnsupportedType, field.Name, field.Type)
	}

	param := Parameter{
		Name:    tag.name,
		Type:    field.Type,
		field:   field.Name,
		index:   index,
		tagDesc: tag.desc,
		hasDesc: tag.hasDesc,
	}

	if param.Name == "" {
		param.Name = camelToSnake(field.Name)
	}

	switch {
	case tag.hasDefault:
		value := reflect.New(field.Type).Elem()

		// An empty default still builds an empty slice or map, as an empty value would.
		if tag.defaultVal != "" || isCollectionType(field.Type) {
			err := setFieldFromString(value, tag.defaultVal)
			if err != nil {
				return Parameter{}, fmt.Errorf("%w: field %s: %w", ErrInvalidDefault, field.Name, err)
			}
		}

		param.HasDefault = true
		param.Default = value.Interface()
		param.DefaultText = formatValue(value)
	case class && prototype.IsValid() && !prototype.IsZero():
		param.HasDefault = true
		param.Default = prototype.Interface()
		param.DefaultText = formatValue(prototype)
	}

	return param, nil
}

// parseFieldTag parses `opt:"name=x,default=y,desc=text"`. desc runs to the end of the tag,
// so descriptions may contain commas.
func parseFieldTag(tag string) fieldTag {
	var parsed fieldTag

	if tag == tagSkip {
		parsed.skip = true
		return parsed
	}

	rest := tag
	for rest != "" {
		var part string

		rest = strings.TrimLeft(rest, " ")

		if strings.HasPrefix(rest, tagDesc+"=") {
			part, rest = rest, ""
		} else {
			part, rest, _ = strings.Cut(rest, ",")
		}

		key, value, _ := strings.Cut(strings.TrimLeft(part, " "), "=")

		switch key {
		case tagName:
			parsed.name = value
		case tagDefault:
			parsed.hasDefault = true
			parsed.defaultVal = value
		case tagDesc:
			parsed.hasDesc = true
			parsed.desc = value
		}
	}

	return parsed
}
