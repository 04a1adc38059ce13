package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	perr "scribe/internal/platform/errors"
)

// ParseQuery fills T from the URL query string, then validates it like ParseJSON
// fields are matched by their `query` tag, falling back to the json tag name
// supported kinds are string, bool and signed ints; unknown parameters are ignored
func ParseQuery[T any](r *http.Request) (T, error) {
	var zero, dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return zero, perr.Newf(perr.ErrorCodeUnknown, "bind: ParseQuery needs a struct, got %s", rv.Kind())
	}
	values := r.URL.Query()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := queryName(f)
		if name == "" {
			continue
		}
		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}
		if err := setField(rv.Field(i), raw[0]); err != nil {
			return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s is not a valid %s", name, f.Type.Kind()), name)
		}
	}

	if err := validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

func queryName(f reflect.StructField) string {
	tag := f.Tag.Get("query")
	if tag == "" {
		tag = f.Tag.Get("json")
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "-" {
		return ""
	}
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	return tag
}

func setField(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		// a bare flag (?strict) counts as true
		if strings.TrimSpace(s) == "" {
			v.SetBool(true)
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	default:
		return strconv.ErrSyntax
	}
	return nil
}
