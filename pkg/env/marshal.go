package env

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Marshal reflects over the struct pointed to by c and returns the
// non-zero fields keyed by their env tag.
func Marshal(c any) (map[string]string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("env: expected pointer to struct, got %T", c)
	}
	v = v.Elem()
	t := v.Type()

	out := make(map[string]string)
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		// "KEY" or "KEY,required"
		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			continue
		}

		val := v.Field(i)
		if val.IsZero() {
			continue
		}
		out[key] = formatValue(val)
	}
	return out, nil
}

// MarshalEnv renders c as .env content with keys in sorted order.
func MarshalEnv(c any) (string, error) {
	values, err := Marshal(c)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", nil
	}
	content, err := godotenv.Marshal(values)
	if err != nil {
		return "", err
	}
	return content + "\n", nil
}

// WriteFile merges the fields of c into the .env file at path. Keys
// already in the file and not set on c are kept.
func WriteFile(path string, c any) error {
	values, err := Marshal(c)
	if err != nil {
		return err
	}

	merged := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		existing, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		merged = existing
	}
	for k, v := range values {
		merged[k] = v
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return godotenv.Write(merged, path)
}

func formatValue(v reflect.Value) string {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
