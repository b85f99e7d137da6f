package performance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/perf-summaries/pkg/errors"
)

func TestDecodeBatchValid(t *testing.T) {
	body := `{"employees":[
		{"name":"Ada","id":"E-1","department":"Eng","month":"May","tasksCompleted":12,"goalsMet":87.5,"peerFeedback":"kind"},
		{"name":"","id":"E-2","department":"Ops","month":"May","tasksCompleted":0,"goalsMet":0,"managerComments":null,"extra":true}
	]}`

	records, err := NewValidator().DecodeBatch([]byte(body))
	require.NoError(t, err)
	require.Equal(t, []EmployeeRecord{
		{Name: "Ada", ID: "E-1", Department: "Eng", Month: "May", TasksCompleted: 12, GoalsMet: 87.5, PeerFeedback: "kind"},
		{Name: "", ID: "E-2", Department: "Ops", Month: "May", TasksCompleted: 0, GoalsMet: 0},
	}, records)
}

func TestDecodeBatchEmptyList(t *testing.T) {
	records, err := NewValidator().DecodeBatch([]byte(`{"employees":[]}`))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestDecodeBatchIssues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []FieldIssue
	}{
		{
			name: "missing employees",
			body: `{}`,
			want: []FieldIssue{{Loc: []any{"body", "employees"}, Msg: "Field required", Type: IssueMissing}},
		},
		{
			name: "employees not a list",
			body: `{"employees":"nope"}`,
			want: []FieldIssue{{Loc: []any{"body", "employees"}, Msg: "Input should be a valid array, got string", Type: IssueTypeError}},
		},
		{
			name: "missing required field",
			body: `{"employees":[{"name":"Ada","id":"E-1","department":"Eng","month":"May","tasksCompleted":3}]}`,
			want: []FieldIssue{{Loc: []any{"body", "employees", 0, "goalsMet"}, Msg: "Field required", Type: IssueMissing}},
		},
		{
			name: "wrong type reported once",
			body: `{"employees":[
				{"name":"Ada","id":"E-1","department":"Eng","month":"May","tasksCompleted":3,"goalsMet":1},
				{"name":"Bob","id":"E-2","department":"Eng","month":"May","tasksCompleted":"three","goalsMet":1}
			]}`,
			want: []FieldIssue{{Loc: []any{"body", "employees", 1, "tasksCompleted"}, Msg: "Input should be a valid integer, got string", Type: IssueTypeError}},
		},
		{
			name: "null required field",
			body: `{"employees":[{"name":null,"id":"E-1","department":"Eng","month":"May","tasksCompleted":3,"goalsMet":1}]}`,
			want: []FieldIssue{{Loc: []any{"body", "employees", 0, "name"}, Msg: "Field required", Type: IssueMissing}},
		},
		{
			name: "null employee",
			body: `{"employees":[null]}`,
			want: []FieldIssue{{Loc: []any{"body", "employees", 0}, Msg: "Input should be a valid object", Type: IssueTypeError}},
		},
		{
			name: "every wrong type in one employee",
			body: `{"employees":[{"name":"Ada","id":"E-1","department":"Eng","month":"May","tasksCompleted":"x","goalsMet":"y"}]}`,
			want: []FieldIssue{
				{Loc: []any{"body", "employees", 0, "tasksCompleted"}, Msg: "Input should be a valid integer, got string", Type: IssueTypeError},
				{Loc: []any{"body", "employees", 0, "goalsMet"}, Msg: "Input should be a valid number, got string", Type: IssueTypeError},
			},
		},
		{
			name: "keys are case sensitive",
			body: `{"employees":[{"NAME":"Ada","Id":"E-1","department":"Eng","month":"May","tasksCompleted":3,"goalsMet":1}]}`,
			want: []FieldIssue{
				{Loc: []any{"body", "employees", 0, "name"}, Msg: "Field required", Type: IssueMissing},
				{Loc: []any{"body", "employees", 0, "id"}, Msg: "Field required", Type: IssueMissing},
			},
		},
		{
			name: "employees key is case sensitive",
			body: `{"Employees":[]}`,
			want: []FieldIssue{{Loc: []any{"body", "employees"}, Msg: "Field required", Type: IssueMissing}},
		},
		{
			name: "optional field with wrong type",
			body: `{"employees":[{"name":"Ada","id":"E-1","department":"Eng","month":"May","tasksCompleted":3,"goalsMet":1,"peerFeedback":5}]}`,
			want: []FieldIssue{{Loc: []any{"body", "employees", 0, "peerFeedback"}, Msg: "Input should be a valid string, got number", Type: IssueTypeError}},
		},
		{
			name: "employee not an object",
			body: `{"employees":["Ada"]}`,
			want: []FieldIssue{{Loc: []any{"body", "employees", 0}, Msg: "Input should be a valid object, got string", Type: IssueTypeError}},
		},
		{
			name: "malformed json",
			body: `{"employees":[`,
			want: []FieldIssue{{Loc: []any{"body"}, Msg: "JSON decode error: unexpected end of JSON input", Type: IssueJSONInvalid}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewValidator().DecodeBatch([]byte(tt.body))
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tt.want, verr.Issues)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Issues: []FieldIssue{
		{Loc: []any{"body", "employees", 0, "id"}, Msg: "Field required", Type: IssueMissing},
		{Loc: []any{"body", "employees", 2, "goalsMet"}, Msg: "Input should be a valid number, got string", Type: IssueTypeError},
	}}
	require.Equal(t, "body.employees.0.id: Field required; body.employees.2.goalsMet: Input should be a valid number, got string", err.Error())
}
