package core

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
)

// unexported constants.
const (
	runMethod      = "Run"
	validateMethod = "Validate"
)

// unexported variables.
var (
	//nolint:gochecknoglobals // reflect type for context injection
	contextType = reflect.TypeFor[context.Context]()
	//nolint:gochecknoglobals // reflect type for error results
	errorType = reflect.TypeFor[error]()
)

// target is a bound callable: a function taking a parameter struct, or a struct type with a Run method.
type target struct {
	kind targetKind
	// fn is the function of a function target.
	fn reflect.Value
	// params is the struct type whose fields are the parameters. Nil for a function without one.
	params reflect.Type
	// paramsByPointer is set when a function target takes *params.
	paramsByPointer bool
	// prototype seeds new instances of a class target. It may be invalid.
	prototype reflect.Value
	// symbol is the runtime name used to locate documentation: the function, or the Run method.
	symbol string
	pc     uintptr
}

type targetKind int

const (
	functionTarget targetKind = iota + 1
	classTarget
)

func (k targetKind) String() string {
	switch k {
	case functionTarget:
		return "function"
	case classTarget:
		return "class"
	default:
		return "unknown"
	}
}

// bindTarget classifies v and checks that it can be called from a command line.
func bindTarget(v any) (*target, error) {
	if typ, ok := v.(reflect.Type); ok {
		if typ == nil || typ.Kind() != reflect.Struct {
			return nil, &TargetKindError{Type: fmt.Sprint(typ), Reason: "reflect.Type targets must be struct types"}
		}

		return bindClass(v, typ, reflect.Value{})
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Func:
		return bindFunction(v, rv)
	case reflect.Struct:
		return bindClass(v, rv.Type(), rv)
	case reflect.Pointer:
		if rv.Type().Elem().Kind() != reflect.Struct {
			return nil, targetKindError(v, "pointer targets must point to a struct")
		}

		if rv.IsNil() {
			return bindClass(v, rv.Type().Elem(), reflect.Value{})
		}

		return bindClass(v, rv.Type().Elem(), rv.Elem())
	case reflect.Invalid:
		return nil, targetKindError(v, "target is nil")
	default:
		return nil, targetKindError(v, "expected a function or a struct with a %s method", runMethod)
	}
}

func bindClass(v any, typ reflect.Type, prototype reflect.Value) (*target, error) {
	// A value-receiver Run seen through the pointer type is a generated wrapper with no source.
	method, ok := typ.MethodByName(runMethod)
	if !ok {
		method, ok = reflect.PointerTo(typ).MethodByName(runMethod)
	}

	if !ok {
		return nil, targetKindError(v, "struct type %s has no %s method", typ, runMethod)
	}

	bound := &target{
		kind:      classTarget,
		params:    typ,
		prototype: prototype,
		pc:        method.Func.Pointer(),
	}
	bound.symbol = funcName(bound.pc)

	return bound, nil
}

func bindFunction(v any, fn reflect.Value) (*target, error) {
	if fn.IsNil() {
		return nil, targetKindError(v, "function is nil")
	}

	fnType := fn.Type()
	if fnType.IsVariadic() {
		return nil, targetKindError(v, "variadic functions are not supported")
	}

	bound := &target{kind: functionTarget, fn: fn, pc: fn.Pointer()}
	bound.symbol = funcName(bound.pc)

	for i := range fnType.NumIn() {
		in := fnType.In(i)

		switch {
		case i == 0 && isContextType(in):
			continue
		case bound.params != nil:
			return nil, targetKindError(v, "function must take a single parameter struct, got %s", fnType)
		case in.Kind() == reflect.Struct:
			bound.params = in
		case in.Kind() == reflect.Pointer && in.Elem().Kind() == reflect.Struct:
			bound.params = in.Elem()
			bound.paramsByPointer = true
		default:
			return nil, targetKindError(v, "parameter %d of %s is not a struct", i, fnType)
		}
	}

	return bound, nil
}

// callWithExtras calls fn, injecting ctx into a leading context.Context parameter
// and filling the rest from extra, then zero values.
func callWithExtras(ctx context.Context, fn reflect.Value, extra []any) (any, error) {
	fnType := fn.Type()
	numIn := fnType.NumIn()
	callArgs := make([]reflect.Value, 0, numIn+len(extra))
	next := 0

	for i := range numIn {
		paramType := fnType.In(i)

		if i == 0 && isContextType(paramType) {
			callArgs = append(callArgs, reflect.ValueOf(ctx))
			continue
		}

		if fnType.IsVariadic() && i == numIn-1 {
			for ; next < len(extra); next++ {
				arg, err := extraValue(extra[next], paramType.Elem())
				if err != nil {
					return nil, err
				}

				callArgs = append(callArgs, arg)
			}

			break
		}

		if next < len(extra) {
			arg, err := extraValue(extra[next], paramType)
			if err != nil {
				return nil, err
			}

			callArgs = append(callArgs, arg)
			next++

			continue
		}

		callArgs = append(callArgs, reflect.Zero(paramType))
	}

	if next < len(extra) {
		return nil, fmt.Errorf("%w: %s accepts %d, got %d", ErrTooManyArguments, fnType, next, len(extra))
	}

	return splitResults(fn.Call(callArgs))
}

// extraValue adapts a caller-supplied value to the parameter type it fills.
func extraValue(v any, paramType reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(paramType), nil
	}

	rv := reflect.ValueOf(v)

	switch {
	case rv.Type().AssignableTo(paramType):
		return rv, nil
	case rv.Type().ConvertibleTo(paramType):
		return rv.Convert(paramType), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrInvalidArgument, v, paramType)
	}
}

func funcName(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}

	return fn.Name()
}

func isContextType(t reflect.Type) bool {
	return t == contextType
}

// splitResults returns the first non-error result and the trailing error, if any.
func splitResults(results []reflect.Value) (any, error) {
	var value any

	for i, result := range results {
		if i == len(results)-1 && result.Type() == errorType {
			if !result.IsNil() {
				err, _ := result.Interface().(error)
				return value, err
			}

			break
		}

		if i == 0 {
			value = result.Interface()
		}
	}

	return value, nil
}
