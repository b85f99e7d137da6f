package performance

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/yanqian/perf-summaries/pkg/errors"
)

// Issue types reported for invalid input.
const (
	IssueMissing     = "missing"
	IssueTypeError   = "type_error"
	IssueJSONInvalid = "json_invalid"
)

// FieldIssue locates one problem in the request body. Loc starts with "body"
// and mixes field names and array indexes.
type FieldIssue struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ValidationError carries every issue found in a batch.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		loc := make([]string, 0, len(issue.Loc))
		for _, l := range issue.Loc {
			loc = append(loc, fmt.Sprint(l))
		}
		parts = append(parts, strings.Join(loc, ".")+": "+issue.Msg)
	}
	return strings.Join(parts, "; ")
}

type batchInput struct {
	Employees []json.RawMessage `json:"employees" validate:"required"`
}

// Validator decodes and type-checks employee batches.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// DecodeBatch parses a {"employees": [...]} body. Keys match exactly. Any
// issue fails the whole batch with a *ValidationError wrapped as invalid_input.
func (v *Validator) DecodeBatch(data []byte) ([]EmployeeRecord, error) {
	body := []any{"body"}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, invalid(decodeIssue(err, body))
	}
	if top == nil {
		return nil, invalid(FieldIssue{Loc: body, Msg: "Input should be a valid object", Type: IssueTypeError})
	}

	var batch batchInput
	if raw, ok := top["employees"]; ok {
		if err := json.Unmarshal(raw, &batch.Employees); err != nil {
			return nil, invalid(decodeIssue(err, appendLoc(body, "employees")))
		}
	}
	if issues := v.structIssues(batch, body, nil); len(issues) > 0 {
		return nil, invalid(issues...)
	}

	var issues []FieldIssue
	records := make([]EmployeeRecord, 0, len(batch.Employees))
	for i, raw := range batch.Employees {
		in, elemIssues := v.decodeEmployee(raw, []any{"body", "employees", i})
		if len(elemIssues) > 0 {
			issues = append(issues, elemIssues...)
			continue
		}
		records = append(records, in.record())
	}
	if len(issues) > 0 {
		return nil, invalid(issues...)
	}
	return records, nil
}

// decodeEmployee decodes one element field by field so every wrong-typed
// field is reported, and keys that differ only in case count as absent.
func (v *Validator) decodeEmployee(raw json.RawMessage, loc []any) (employeeInput, []FieldIssue) {
	var in employeeInput
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return in, []FieldIssue{decodeIssue(err, loc)}
	}
	if fields == nil {
		return in, []FieldIssue{{Loc: loc, Msg: "Input should be a valid object", Type: IssueTypeError}}
	}

	var issues []FieldIssue
	typeErrors := make(map[string]bool)
	for _, target := range in.targets() {
		value, ok := fields[target.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, target.dst); err != nil {
			issues = append(issues, decodeIssue(err, appendLoc(loc, target.key)))
			typeErrors[target.key] = true
		}
	}
	issues = append(issues, v.structIssues(in, loc, typeErrors)...)
	return in, issues
}

// structIssues runs tag validation. Fields already reported as type errors
// are not reported again as missing.
func (v *Validator) structIssues(s any, loc []any, skip map[string]bool) []FieldIssue {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldIssue{{Loc: loc, Msg: err.Error(), Type: IssueTypeError}}
	}
	issues := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		if skip[fe.Field()] {
			continue
		}
		issues = append(issues, FieldIssue{Loc: appendLoc(loc, fe.Field()), Msg: "Field required", Type: IssueMissing})
	}
	return issues
}

func decodeIssue(err error, loc []any) FieldIssue {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		fieldLoc := loc
		if typeErr.Field != "" {
			for _, part := range strings.Split(typeErr.Field, ".") {
				fieldLoc = appendLoc(fieldLoc, part)
			}
		}
		return FieldIssue{
			Loc:  fieldLoc,
			Msg:  fmt.Sprintf("Input should be a valid %s, got %s", kindName(typeErr.Type), typeErr.Value),
			Type: IssueTypeError,
		}
	}
	return FieldIssue{Loc: loc, Msg: "JSON decode error: " + err.Error(), Type: IssueJSONInvalid}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.Kind().String()
	}
}

func appendLoc(loc []any, part any) []any {
	out := make([]any, len(loc), len(loc)+1)
	copy(out, loc)
	return append(out, part)
}

func invalid(issues ...FieldIssue) error {
	return apperrors.Wrap(apperrors.CodeInvalidInput, "invalid request body", &ValidationError{Issues: issues})
}
