package primitive

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotAllowed   = errors.New("conversion pair is not allowed")
	ErrInvalidValue = errors.New("value cannot be represented in target type")
)

var (
	stringerType        = reflect.TypeFor[fmt.Stringer]()
	validatorType       = reflect.TypeFor[interface{ IsValid() bool }]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Convert converts src into a value of type dst using the runtime rules of the
// allowed categories. The returned value always has type dst exactly.
func Convert(src reflect.Value, dst reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	if !src.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: nil to %s", ErrNotAllowed, dst)
	}

	srcKind := FromReflectType(src.Type())
	dstKind := FromReflectType(dst)
	pair := ConversionPair{srcKind, dstKind}

	if !IsAllowed(pair, allowed) {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotAllowed, src.Type(), dst)
	}

	if srcKind == KindPrimitiveEnum || dstKind == KindPrimitiveEnum {
		return convertEnum(src, dst, srcKind, dstKind)
	}

	fn, ok := converters[pair]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotAllowed, src.Type(), dst)
	}

	res, err := fn(src)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%s to %s: %w", src.Type(), dst, err)
	}

	return res.Convert(dst), nil
}

func convertEnum(src reflect.Value, dst reflect.Type, srcKind, dstKind KindEnum) (reflect.Value, error) {
	// enum -> string goes through String() when available
	text := ""
	if srcKind == KindPrimitiveEnum {
		switch {
		case dstKind == KindPrimitiveEnum && src.Kind() == dst.Kind():
			return checkValid(src.Convert(dst))
		case src.Type().Implements(stringerType):
			text = src.Interface().(fmt.Stringer).String()
		case src.Kind() == reflect.String:
			text = src.String()
		default:
			return reflect.Value{}, fmt.Errorf("%w: %s has no textual form", ErrInvalidValue, src.Type())
		}
	} else {
		text = src.String()
	}

	if dstKind != KindPrimitiveEnum {
		return reflect.ValueOf(text).Convert(dst), nil
	}

	if reflect.PointerTo(dst).Implements(textUnmarshalerType) {
		out := reflect.New(dst)
		if err := out.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return reflect.Value{}, fmt.Errorf("%s: %w", dst, err)
		}

		return checkValid(out.Elem())
	}

	if dst.Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("%w: %q is not a valid value for %s", ErrInvalidValue, text, dst)
	}

	return checkValid(reflect.ValueOf(text).Convert(dst))
}

func checkValid(v reflect.Value) (reflect.Value, error) {
	if v.Type().Implements(validatorType) && !v.Interface().(interface{ IsValid() bool }).IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %v is not a valid value for %s", ErrInvalidValue, v.Interface(), v.Type())
	}

	return v, nil
}

type converterFunc func(src reflect.Value) (reflect.Value, error)

var converters map[ConversionPair]converterFunc

func init() {
	converters = map[ConversionPair]converterFunc{}

	// CategorySafeNumber
	// CategoryUnsafeNumber
	for fromKind := KindEnum(0); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsNumber() {
			continue
		}

		for toKind := KindEnum(0); int(toKind) < KindTotal; toKind++ {
			if !toKind.IsNumber() {
				continue
			}

			converters[ConversionPair{fromKind, toKind}] = identity
		}
	}

	// CategoryTextNumber
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		bits := 0
		if numberKind.IsNumber() {
			bits = numberKind.Bits()
		}

		switch {
		case numberKind.IsSigned():
			converters[ConversionPair{numberKind, KindString}] = func(src reflect.Value) (reflect.Value, error) {
				return reflect.ValueOf(strconv.FormatInt(src.Int(), 10)), nil
			}
			converters[ConversionPair{KindString, numberKind}] = func(src reflect.Value) (reflect.Value, error) {
				n, err := strconv.ParseInt(strings.TrimSpace(src.String()), 10, bits)
				if err != nil {
					return reflect.Value{}, err
				}
				return reflect.ValueOf(n), nil
			}
		case numberKind.IsUnsigned():
			converters[ConversionPair{numberKind, KindString}] = func(src reflect.Value) (reflect.Value, error) {
				return reflect.ValueOf(strconv.FormatUint(src.Uint(), 10)), nil
			}
			converters[ConversionPair{KindString, numberKind}] = func(src reflect.Value) (reflect.Value, error) {
				n, err := strconv.ParseUint(strings.TrimSpace(src.String()), 10, bits)
				if err != nil {
					return reflect.Value{}, err
				}
				return reflect.ValueOf(n), nil
			}
		case numberKind.IsFloat():
			converters[ConversionPair{numberKind, KindString}] = func(src reflect.Value) (reflect.Value, error) {
				return reflect.ValueOf(strconv.FormatFloat(src.Float(), 'f', -1, bits)), nil
			}
			converters[ConversionPair{KindString, numberKind}] = func(src reflect.Value) (reflect.Value, error) {
				f, err := strconv.ParseFloat(strings.TrimSpace(src.String()), bits)
				if err != nil {
					return reflect.Value{}, err
				}
				return reflect.ValueOf(f), nil
			}
		}
	}

	// CategoryNumericBool
	for fromKind := KindEnum(0); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsInteger() {
			continue
		}

		// 0, 1 - valid, other numbers is error
		converters[ConversionPair{fromKind, KindBool}] = func(src reflect.Value) (reflect.Value, error) {
			var n uint64
			if fromKind.IsSigned() {
				if src.Int() < 0 {
					return reflect.Value{}, fmt.Errorf("%w: only numbers 0 and 1 are allowed for bool, got: %d", ErrInvalidValue, src.Int())
				}
				n = uint64(src.Int())
			} else {
				n = src.Uint()
			}

			switch n {
			case 0:
				return reflect.ValueOf(false), nil
			case 1:
				return reflect.ValueOf(true), nil
			default:
				return reflect.Value{}, fmt.Errorf("%w: only numbers 0 and 1 are allowed for bool, got: %d", ErrInvalidValue, n)
			}
		}
		converters[ConversionPair{KindBool, fromKind}] = func(src reflect.Value) (reflect.Value, error) {
			if src.Bool() {
				return reflect.ValueOf(1), nil
			}
			return reflect.ValueOf(0), nil
		}
	}

	// CategoryTextualBool
	converters[ConversionPair{KindString, KindBool}] = func(src reflect.Value) (reflect.Value, error) {
		switch strings.ToLower(strings.TrimSpace(src.String())) {
		default:
			return reflect.Value{}, fmt.Errorf("%w: only strings true/false, yes/no, on/off are allowed for bool, got: %s", ErrInvalidValue, src.String())
		case "true", "yes", "on":
			return reflect.ValueOf(true), nil
		case "false", "no", "off":
			return reflect.ValueOf(false), nil
		}
	}
	converters[ConversionPair{KindBool, KindString}] = func(src reflect.Value) (reflect.Value, error) {
		return reflect.ValueOf(strconv.FormatBool(src.Bool())), nil
	}

	// CategoryDatetime
	converters[ConversionPair{KindString, KindTime}] = func(src reflect.Value) (reflect.Value, error) {
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(src.String()))
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(t), nil
	}
	converters[ConversionPair{KindTime, KindString}] = func(src reflect.Value) (reflect.Value, error) {
		return reflect.ValueOf(src.Interface().(time.Time).Format(time.RFC3339Nano)), nil
	}

	// CategoryTimestamp
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsInteger() {
			continue
		}

		converters[ConversionPair{numberKind, KindTime}] = func(src reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(time.Unix(toInt64(src), 0)), nil
		}
		converters[ConversionPair{KindTime, numberKind}] = func(src reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(src.Interface().(time.Time).Unix()), nil
		}
	}

	// CategoryDuration
	converters[ConversionPair{KindString, KindDuration}] = func(src reflect.Value) (reflect.Value, error) {
		d, err := time.ParseDuration(strings.TrimSpace(src.String()))
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil
	}
	converters[ConversionPair{KindDuration, KindString}] = func(src reflect.Value) (reflect.Value, error) {
		return reflect.ValueOf(src.Interface().(time.Duration).String()), nil
	}

	// CategoryNanoseconds
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsInteger() || numberKind == KindUint64 {
			continue
		}

		converters[ConversionPair{numberKind, KindDuration}] = func(src reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(time.Duration(toInt64(src))), nil
		}
		converters[ConversionPair{KindDuration, numberKind}] = func(src reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(src.Interface().(time.Duration).Nanoseconds()), nil
		}
	}

	// CategorySeconds
	for _, floatKind := range []KindEnum{KindFloat32, KindFloat64} {
		converters[ConversionPair{floatKind, KindDuration}] = func(src reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(time.Duration(src.Float() * float64(time.Second))), nil
		}
		converters[ConversionPair{KindDuration, floatKind}] = func(src reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(src.Interface().(time.Duration).Seconds()), nil
		}
	}

	// CategoryBytesText
	converters[ConversionPair{KindBytes, KindString}] = func(src reflect.Value) (reflect.Value, error) {
		return reflect.ValueOf(string(src.Bytes())), nil
	}
	converters[ConversionPair{KindString, KindBytes}] = func(src reflect.Value) (reflect.Value, error) {
		return reflect.ValueOf([]byte(src.String())), nil
	}
}

func identity(src reflect.Value) (reflect.Value, error) {
	return src, nil
}

func toInt64(v reflect.Value) int64 {
	if v.CanInt() {
		return v.Int()
	}

	return int64(v.Uint())
}
