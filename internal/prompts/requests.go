package prompts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/refinery/internal/templates"
)

const invalidBody = "Invalid request body"

// GenerateRequest is the body accepted by the generate endpoint.
type GenerateRequest struct {
	Prompt   string   `json:"prompt"`
	Template optional `json:"template"`
}

// TemplateType returns the requested template, defaulting to general when omitted.
func (r *GenerateRequest) TemplateType() string {
	if !r.Template.Set {
		return string(templates.General)
	}
	return r.Template.Value
}

// Validate checks field constraints and collects every failure.
func (r *GenerateRequest) Validate() error {
	v := validator{}
	v.minLength("prompt", r.Prompt, 1)
	switch {
	case !r.Template.Set:
	case !r.Template.Valid:
		v.add("template", "must be a string")
	default:
		if _, err := templates.Parse(r.Template.Value); err != nil {
			v.add("template", err.Error())
		}
	}
	return v.err()
}

// RefineRequest is the body accepted by the refine endpoint.
type RefineRequest struct {
	Prompt          string  `json:"prompt"`
	AdditionalInput string  `json:"additional_input"`
	RefinementCount integer `json:"refinement_count"`
	Choice          string  `json:"choice"`
}

// State returns the client-supplied prompt state.
func (r *RefineRequest) State() State {
	return State{Text: r.Prompt, RefinementCount: r.RefinementCount.Value}
}

// Validate checks field constraints and collects every failure.
func (r *RefineRequest) Validate() error {
	v := validator{}
	v.minLength("prompt", r.Prompt, 1)
	v.minLength("additional_input", r.AdditionalInput, 1)

	switch {
	case !r.RefinementCount.Set:
		v.add("refinement_count", "required")
	case !r.RefinementCount.Valid:
		v.add("refinement_count", "must be an integer")
	case r.RefinementCount.Value < 0:
		v.add("refinement_count", "must be greater than or equal to 0")
	}

	if r.Choice != ChoiceAddContext {
		v.add("choice", fmt.Sprintf("must be %q", ChoiceAddContext))
	}
	return v.err()
}

// optional is a string field that distinguishes an absent key from an
// explicit null or a non-string value.
type optional struct {
	Value string
	Set   bool
	Valid bool
}

func (o *optional) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Valid = len(data) > 0 && data[0] == '"' && json.Unmarshal(data, &o.Value) == nil
	return nil
}

// integer accepts any JSON number without a fractional part, so 2 and 2.0
// are the same value.
type integer struct {
	Value int
	Set   bool
	Valid bool
}

const maxExactInteger = 1 << 53

func (n *integer) UnmarshalJSON(data []byte) error {
	n.Set = true
	if len(data) == 0 || data[0] == '"' {
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactInteger {
		return nil
	}
	n.Value = int(f)
	n.Valid = true
	return nil
}

// TestRequest is the body accepted by the test endpoint.
type TestRequest struct {
	Prompt string `json:"prompt"`
}

// Validate checks field constraints.
func (r *TestRequest) Validate() error {
	v := validator{}
	v.minLength("prompt", r.Prompt, 1)
	return v.err()
}

type validator map[string][]string

func (v validator) add(field, msg string) {
	v[field] = append(v[field], msg)
}

func (v validator) minLength(field, value string, n int) {
	if utf8.RuneCountInString(value) < n {
		v.add(field, fmt.Sprintf("must contain at least %d character(s)", n))
	}
}

func (v validator) err() error {
	if len(v) == 0 {
		return nil
	}
	return validationError(invalidBody, v)
}

// decodeBody reads a single JSON object from the request body into dst,
// limiting it to maxBytes. Keys are matched exactly against the json tags of
// dst; any other key is ignored. Malformed input is reported as a validation
// error naming the offending field where one can be identified.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	dec := json.NewDecoder(r.Body)

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return bodyError(err)
	}
	if raw == nil {
		return bodyError(errNotObject)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var sizeErr *http.MaxBytesError
		if !errors.As(err, &sizeErr) {
			err = errTrailingData
		}
		return bodyError(err)
	}

	known := fieldNames(dst)
	for key := range raw {
		if !known[key] {
			delete(raw, key)
		}
	}

	exact, err := json.Marshal(raw)
	if err != nil {
		return bodyError(err)
	}
	if err := json.Unmarshal(exact, dst); err != nil {
		return bodyError(err)
	}
	return nil
}

var (
	errNotObject    = errors.New("body is not a JSON object")
	errTrailingData = errors.New("unexpected data after JSON object")
)

func bodyError(err error) error {
	var (
		typeErr   *json.UnmarshalTypeError
		sizeErr   *http.MaxBytesError
		syntaxErr *json.SyntaxError
	)

	var field, msg string
	switch {
	case errors.As(err, &sizeErr):
		field, msg = "body", fmt.Sprintf("must not exceed %d bytes", sizeErr.Limit)
	case errors.Is(err, io.EOF):
		field, msg = "body", "required"
	case errors.Is(err, errTrailingData):
		field, msg = "body", errTrailingData.Error()
	case errors.Is(err, errNotObject):
		field, msg = "body", "must be a JSON object"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		field, msg = typeErr.Field, fmt.Sprintf("expected %s, got %s", jsonKind(typeErr.Type), typeErr.Value)
	case errors.As(err, &typeErr):
		field, msg = "body", "must be a JSON object"
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		field, msg = "body", "malformed JSON"
	default:
		field, msg = "body", "unreadable"
	}

	return validationError(invalidBody, map[string][]string{field: {msg}})
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int64, reflect.Float64:
		return "number"
	default:
		return "object"
	}
}

// fieldNames returns the json tag names of the struct dst points to.
func fieldNames(dst any) map[string]bool {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	names := make(map[string]bool, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names[name] = true
		}
	}
	return names
}
