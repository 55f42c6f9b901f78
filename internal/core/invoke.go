package core

import (
	"context"
	"fmt"
	"reflect"
)

// invoke calls a function target with its parameter struct, or builds an instance of a
// class target and calls its Run method with extra.
func (t *target) invoke(ctx context.Context, params []Parameter, values Values, extra []any) (any, error) {
	switch t.kind {
	case functionTarget:
		return t.callFunction(ctx, params, values)
	case classTarget:
		return t.callClass(ctx, params, values, extra)
	default:
		return nil, &TargetKindError{Type: t.symbol, Reason: "unbound target"}
	}
}

func (t *target) callClass(ctx context.Context, params []Parameter, values Values, extra []any) (any, error) {
	instance, err := t.construct(params, values)
	if err != nil {
		return nil, err
	}

	if validate := instance.MethodByName(validateMethod); validate.IsValid() {
		if validate.Type().NumIn() == 0 && validate.Type().NumOut() == 1 &&
			validate.Type().Out(0) == errorType {
			if _, err := splitResults(validate.Call(nil)); err != nil {
				return nil, err
			}
		}
	}

	return callWithExtras(ctx, instance.MethodByName(runMethod), extra)
}

func (t *target) callFunction(ctx context.Context, params []Parameter, values Values) (any, error) {
	fnType := t.fn.Type()
	callArgs := make([]reflect.Value, 0, fnType.NumIn())

	for i := range fnType.NumIn() {
		if i == 0 && isContextType(fnType.In(0)) {
			callArgs = append(callArgs, reflect.ValueOf(ctx))
			continue
		}

		instance, err := t.construct(params, values)
		if err != nil {
			return nil, err
		}

		if t.paramsByPointer {
			callArgs = append(callArgs, instance)
		} else {
			callArgs = append(callArgs, instance.Elem())
		}
	}

	return splitResults(t.fn.Call(callArgs))
}

// construct returns a pointer to a new parameter struct: a copy of the prototype, if any,
// with every value present in values stored in its field.
func (t *target) construct(params []Parameter, values Values) (reflect.Value, error) {
	instance := reflect.New(t.params)
	if t.prototype.IsValid() {
		instance.Elem().Set(t.prototype)
	}

	for _, param := range params {
		value, ok := values[param.Name]
		if !ok {
			continue
		}

		field := instance.Elem().FieldByIndex(param.index)

		rv := reflect.ValueOf(value)
		if !rv.IsValid() || !rv.Type().AssignableTo(field.Type()) {
			return reflect.Value{}, fmt.Errorf("%w: value %v for %s is not a %s",
				ErrInvalidArgument, value, param.Name, field.Type())
		}

		field.Set(rv)
	}

	return instance, nil
}
