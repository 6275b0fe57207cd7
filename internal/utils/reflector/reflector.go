package reflector

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
)

// SetByTag parses raw into the field of the struct pointed to by dst whose
// tag under tagKey equals name.
func SetByTag(dst interface{}, tagKey string, name string, raw string) error {
	s, err := structElem(dst)
	if err != nil {
		return err
	}

	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get(tagKey) != name {
			continue
		}

		f := s.Field(i)
		if !f.CanSet() {
			return fmt.Errorf("%w: %v", ErrUnknownField, name)
		}

		if err := setValue(&f, raw); err != nil {
			return fmt.Errorf("%v: %w", name, err)
		}

		return nil
	}

	return fmt.Errorf("%w: %v", ErrUnknownField, name)
}

// Values renders every tagged field of src as text, keyed by tag.
func Values(src interface{}, tagKey string) map[string]string {
	v := reflect.Indirect(reflect.ValueOf(src))
	if v.Kind() != reflect.Struct {
		return nil
	}

	ret := make(map[string]string)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get(tagKey)
		if name == "" || !t.Field(i).IsExported() {
			continue
		}
		ret[name] = fmt.Sprint(v.Field(i).Interface())
	}

	return ret
}

func structElem(dst interface{}) (reflect.Value, error) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%T is not a pointer to struct", dst)
	}

	return v.Elem(), nil
}

func setValue(f *reflect.Value, raw string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, f.Type().Bits())
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidValue, raw)
		}
		f.SetUint(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, f.Type().Bits())
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidValue, raw)
		}
		f.SetInt(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidValue, raw)
		}
		f.SetBool(v)
	default:
		return fmt.Errorf("%w: unsupported kind %v", ErrInvalidValue, f.Kind())
	}

	return nil
}
