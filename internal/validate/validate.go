// Package validate turns raw request bodies into typed, checked values.
//
// Every payload kind has one function here. Each returns either the typed
// value or an *apperror.AppError carrying ErrValidation and a Details map
// with every failing field, so a rejected batch reports all of its problems
// at once. Field rules are declared as struct tags and checked by
// go-playground/validator; this package only adds JSON decoding, a few
// custom rules and message formatting.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/ideaforge/internal/apperror"
)

// bodyField is the Details key used for problems with the payload as a whole.
const bodyField = "body"

// Validator holds the configured go-playground validator. It is safe for
// concurrent use; build one at startup and share it.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with JSON field names and the custom
// "wholenumber" rule registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so Details keys match what the
	// caller actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("wholenumber", wholeNumber)

	return &Validator{validate: v}
}

func wholeNumber(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsInf(f, 0) && f == math.Trunc(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// check runs struct validation on s and records every failure in details.
// Paths that already failed while decoding, and fields nested under them,
// are skipped so each field reports its first real problem.
func (v *Validator) check(s any, details apperror.Details) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	decoded := make([]string, 0, len(details))
	for path := range details {
		decoded = append(decoded, path)
	}

	for _, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		if covered(decoded, path) {
			continue
		}
		details.Add(path, message(fe))
	}
	return nil
}

func covered(failed []string, path string) bool {
	for _, f := range failed {
		if path == f || strings.HasPrefix(path, f+".") {
			return true
		}
	}
	return false
}

// fieldPath converts a validator namespace such as
// "scoreBatch.items[2].score" into the public path "[2].score".
// The first segment is always the wrapper type name; batch wrappers keep
// their elements under "items", which is dropped so indexes lead.
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return bodyField
	}
	rest = strings.TrimPrefix(rest, "items")
	rest = strings.TrimPrefix(rest, ".")
	if rest == "" {
		return bodyField
	}
	return rest
}

// message renders one field error. Messages name the field the same way the
// Details key does.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return "at least one item is required"
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "wholenumber":
		return fmt.Sprintf("%s must be an integer", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// decode unmarshals body into dst. Problems are recorded in details under
// prefix (an item index such as "[3]" or "" for the top level). The return
// value reports whether anything usable was decoded.
func decode(body []byte, dst any, prefix string, details apperror.Details) bool {
	if len(bytes.TrimSpace(body)) == 0 {
		details.Add(keyOr(prefix, bodyField), "request body is required")
		return false
	}

	body = normalize(body, reflect.TypeOf(dst).Elem(), prefix, details)

	err := json.Unmarshal(body, dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		// Unmarshal keeps going after a type error, so the rest of dst is
		// populated and still worth validating.
		if typeErr.Field == "" {
			details.Add(keyOr(prefix, bodyField), "expected "+jsonKind(typeErr.Type))
			return false
		}
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		details.Add(join(prefix, typeErr.Field), mustBe(field, typeErr.Type))
		return true
	}

	details.Add(keyOr(prefix, bodyField), "request body must be valid JSON")
	return false
}

// normalize rewrites a JSON object bound for struct type t so that
// encoding/json sees only the keys t declares, spelled exactly as its json
// tags spell them. Other keys are dropped, including case variants such as
// "OriginalIdea" that json.Unmarshal would otherwise accept. A declared key
// holding null is reported and dropped. Arrays of objects are normalized
// element by element. Anything that is not an object is returned unchanged
// for json.Unmarshal to report.
func normalize(body []byte, t reflect.Type, prefix string, details apperror.Details) []byte {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return body
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return body
	}

	fields := jsonFields(t)
	for key, val := range obj {
		f, ok := fields[key]
		if !ok {
			delete(obj, key)
			continue
		}
		path := join(prefix, key)
		if isNull(val) {
			details.Add(path, mustBe(key, f.Type))
			delete(obj, key)
			continue
		}
		if f.Type.Kind() == reflect.Slice {
			obj[key] = normalizeItems(val, f.Type.Elem(), path, details)
		}
	}

	out, err := json.Marshal(obj)
	if err != nil {
		return body
	}
	return out
}

func normalizeItems(body json.RawMessage, elem reflect.Type, path string, details apperror.Details) json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil || items == nil {
		return body
	}
	for i, item := range items {
		items[i] = normalize(item, elem, fmt.Sprintf("%s[%d]", path, i), details)
	}
	out, err := json.Marshal(items)
	if err != nil {
		return body
	}
	return out
}

// jsonFields maps each json tag name of struct type t to its field.
func jsonFields(t reflect.Type) map[string]reflect.StructField {
	fields := make(map[string]reflect.StructField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		fields[name] = f
	}
	return fields
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeItems splits a JSON array into its elements and decodes each one
// into a T, recording type errors per index.
func decodeItems[T any](body []byte, details apperror.Details) []T {
	var raw []json.RawMessage
	if !decode(body, &raw, "", details) {
		return nil
	}
	if raw == nil {
		details.Add(bodyField, "expected an array")
		return nil
	}

	items := make([]T, len(raw))
	for i, elem := range raw {
		prefix := fmt.Sprintf("[%d]", i)
		if isNull(elem) {
			details.Add(prefix, "expected an object")
			continue
		}
		decode(elem, &items[i], prefix, details)
	}
	return items
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Bool:
		return "boolean"
	default:
		return "number"
	}
}

// mustBe renders a type mismatch, e.g. "score must be a number".
func mustBe(field string, t reflect.Type) string {
	kind := jsonKind(t)
	article := "a"
	if kind == "array" || kind == "object" {
		article = "an"
	}
	return fmt.Sprintf("%s must be %s %s", field, article, kind)
}

func join(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

func keyOr(prefix, fallback string) string {
	if prefix == "" {
		return fallback
	}
	return prefix
}

// result converts collected details into the function result.
func result(details apperror.Details) error {
	if len(details) == 0 {
		return nil
	}
	return apperror.ValidationFailed(details)
}
