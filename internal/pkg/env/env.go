package env

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// OverrideStruct sets struct fields tagged with `env:"NAME"` from the environment,
// recursing into nested structs and struct pointers. Nil struct pointers are allocated.
// Fields whose variable is unset or empty keep their current value.
func OverrideStruct(v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("override struct: expected a non-nil pointer to a struct, got %T", v)
	}

	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("override struct: expected a pointer to a struct, got %T", v)
	}

	return overrideFields(val)
}

func overrideFields(val reflect.Value) error {
	typ := val.Type()

	for i := range typ.NumField() {
		field := typ.Field(i)
		fieldValue := val.Field(i)

		if !field.IsExported() {
			continue
		}

		envVarName, tagged := field.Tag.Lookup("env")

		switch {
		case tagged:
			envVarValue := strings.TrimSpace(os.Getenv(envVarName))
			if envVarValue == "" {
				continue
			}
			if err := setField(fieldValue, envVarValue); err != nil {
				return fmt.Errorf("field %s from env var %s: %w", field.Name, envVarName, err)
			}

		case fieldValue.Kind() == reflect.Struct:
			if err := overrideFields(fieldValue); err != nil {
				return fmt.Errorf("nested struct %s: %w", field.Name, err)
			}

		case fieldValue.Kind() == reflect.Pointer && fieldValue.Type().Elem().Kind() == reflect.Struct:
			if fieldValue.IsNil() {
				fieldValue.Set(reflect.New(fieldValue.Type().Elem()))
			}
			if err := overrideFields(fieldValue.Elem()); err != nil {
				return fmt.Errorf("nested struct %s: %w", field.Name, err)
			}
		}
	}

	return nil
}

func setField(fieldValue reflect.Value, raw string) error {
	if !fieldValue.CanSet() {
		return fmt.Errorf("cannot set field of kind %s", fieldValue.Kind())
	}

	if fieldValue.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		fieldValue.SetInt(int64(d))
		return nil
	}

	switch fieldValue.Kind() {
	case reflect.String:
		fieldValue.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fieldValue.Type().Bits())
		if err != nil {
			return err
		}
		fieldValue.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fieldValue.Type().Bits())
		if err != nil {
			return err
		}
		fieldValue.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, fieldValue.Type().Bits())
		if err != nil {
			return err
		}
		fieldValue.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fieldValue.SetBool(b)
	case reflect.Slice:
		if fieldValue.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", fieldValue.Type())
		}
		parts := strings.Split(raw, ",")
		items := reflect.MakeSlice(fieldValue.Type(), 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = reflect.Append(items, reflect.ValueOf(p).Convert(fieldValue.Type().Elem()))
			}
		}
		fieldValue.Set(items)
	default:
		return fmt.Errorf("unsupported field type %s", fieldValue.Kind())
	}

	slog.Debug("Config field overridden from environment.", "kind", fieldValue.Kind().String())
	return nil
}

// Env returns the value of the environment variable named by the key.
// If the variable is not present in the environment, it returns the provided fallback value.
func Env(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
