package sqlmodel

import (
	"bytes"
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// timeLayouts are tried in order when a time.Time is decoded from text.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02",
}

var timeType = reflect.TypeOf(time.Time{})

// Convert converts a raw driver value into T. Types implementing sql.Scanner
// (uuid.UUID, decimal.Decimal, sql.Null*) are scanned; pointers accept NULL.
func Convert[T any](v any) (T, error) {
	var out T
	if s, ok := any(&out).(sql.Scanner); ok {
		if err := s.Scan(v); err != nil {
			return out, &ConvertError{Value: v, To: typeName[T](), Err: err}
		}
		return out, nil
	}
	if err := assign(reflect.ValueOf(&out).Elem(), v); err != nil {
		return out, &ConvertError{Value: v, To: typeName[T](), Err: err}
	}
	return out, nil
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// assign stores src into dst, converting between the representations the
// database/sql drivers produce.
func assign(dst reflect.Value, src any) error {
	if src == nil {
		switch dst.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
			dst.SetZero()
			return nil
		}
		return ErrNullValue
	}
	if dst.Kind() == reflect.Pointer {
		elem := reflect.New(dst.Type().Elem())
		if s, ok := elem.Interface().(sql.Scanner); ok {
			if err := s.Scan(src); err != nil {
				return err
			}
		} else if err := assign(elem.Elem(), src); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}
	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(dst.Type()) {
		if b, ok := src.([]byte); ok {
			sv = reflect.ValueOf(bytes.Clone(b))
		}
		dst.Set(sv)
		return nil
	}
	if dst.Type() == timeType {
		t, err := asTime(src)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(t))
		return nil
	}
	switch dst.Kind() {
	case reflect.String:
		s, err := asString(src)
		if err != nil {
			return err
		}
		dst.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := asInt(src)
		if err != nil {
			return err
		}
		if dst.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, dst.Type())
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := asUint(src)
		if err != nil {
			return err
		}
		if dst.OverflowUint(n) {
			return fmt.Errorf("value %d overflows %s", n, dst.Type())
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := asFloat(src)
		if err != nil {
			return err
		}
		if dst.OverflowFloat(f) {
			return fmt.Errorf("value %g overflows %s", f, dst.Type())
		}
		dst.SetFloat(f)
	case reflect.Bool:
		b, err := asBool(src)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Slice:
		if dst.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("unsupported slice type %s", dst.Type())
		}
		switch s := src.(type) {
		case []byte:
			dst.SetBytes(bytes.Clone(s))
		case string:
			dst.SetBytes([]byte(s))
		default:
			return fmt.Errorf("unsupported source type %T", src)
		}
	default:
		if sv.Type().ConvertibleTo(dst.Type()) {
			dst.Set(sv.Convert(dst.Type()))
			return nil
		}
		return fmt.Errorf("unsupported destination type %s", dst.Type())
	}
	return nil
}

func asString(src any) (string, error) {
	switch s := src.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case time.Time:
		return s.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return s.String(), nil
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.String:
		return rv.String(), nil
	}
	return "", fmt.Errorf("unsupported source type %T", src)
}

func asInt(src any) (int64, error) {
	switch s := src.(type) {
	case []byte:
		return strconv.ParseInt(string(s), 10, 64)
	case string:
		return strconv.ParseInt(s, 10, 64)
	case bool:
		if s {
			return 1, nil
		}
		return 0, nil
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return 0, fmt.Errorf("value %d overflows int64", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != float64(int64(f)) {
			return 0, fmt.Errorf("value %g is not integral", f)
		}
		return int64(f), nil
	}
	return 0, fmt.Errorf("unsupported source type %T", src)
}

func asUint(src any) (uint64, error) {
	switch s := src.(type) {
	case []byte:
		return strconv.ParseUint(string(s), 10, 64)
	case string:
		return strconv.ParseUint(s, 10, 64)
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	}
	return 0, fmt.Errorf("unsupported source type %T", src)
}

func asFloat(src any) (float64, error) {
	switch s := src.(type) {
	case []byte:
		return strconv.ParseFloat(string(s), 64)
	case string:
		return strconv.ParseFloat(s, 64)
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	}
	return 0, fmt.Errorf("unsupported source type %T", src)
}

func asBool(src any) (bool, error) {
	switch s := src.(type) {
	case bool:
		return s, nil
	case []byte:
		return strconv.ParseBool(string(s))
	case string:
		return strconv.ParseBool(s)
	}
	n, err := asInt(src)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func asTime(src any) (time.Time, error) {
	var s string
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return time.Time{}, fmt.Errorf("unsupported source type %T", src)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format %q", s)
}

// IsZero reports whether v is the zero value of its type. Generated
// Identity methods use it to tell new records from stored ones.
func IsZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
