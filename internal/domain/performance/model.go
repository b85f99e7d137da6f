package performance

// Config configures summary generation.
type Config struct {
	SystemPrompt string
	// Concurrency bounds in-flight completion calls per batch. 1 keeps the
	// batch strictly sequential.
	Concurrency int
}

// EmployeeRecord is one validated input row.
type EmployeeRecord struct {
	Name            string
	ID              string
	Department      string
	Month           string
	TasksCompleted  int
	GoalsMet        float64
	PeerFeedback    string
	ManagerComments string
}

// SummaryRecord is returned for each employee of a batch.
type SummaryRecord struct {
	Name            string `json:"name"`
	ID              string `json:"id"`
	Department      string `json:"department"`
	Month           string `json:"month"`
	TasksCompleted  string `json:"tasksCompleted"`
	GoalsMet        string `json:"goalsMet"`
	PeerFeedback    string `json:"peerFeedback"`
	ManagerComments string `json:"managerComments"`
	Summary         string `json:"summary"`
}

// Response is the body of a successful batch.
type Response struct {
	Summaries []SummaryRecord `json:"summaries"`
}

// employeeInput is the wire shape of an employee. Pointers distinguish an
// absent field from a zero value.
type employeeInput struct {
	Name            *string  `json:"name" validate:"required"`
	ID              *string  `json:"id" validate:"required"`
	Department      *string  `json:"department" validate:"required"`
	Month           *string  `json:"month" validate:"required"`
	TasksCompleted  *int     `json:"tasksCompleted" validate:"required"`
	GoalsMet        *float64 `json:"goalsMet" validate:"required"`
	PeerFeedback    *string  `json:"peerFeedback"`
	ManagerComments *string  `json:"managerComments"`
}

type fieldTarget struct {
	key string
	dst any
}

// targets lists the JSON keys of an employee in declaration order.
func (in *employeeInput) targets() []fieldTarget {
	return []fieldTarget{
		{key: "name", dst: &in.Name},
		{key: "id", dst: &in.ID},
		{key: "department", dst: &in.Department},
		{key: "month", dst: &in.Month},
		{key: "tasksCompleted", dst: &in.TasksCompleted},
		{key: "goalsMet", dst: &in.GoalsMet},
		{key: "peerFeedback", dst: &in.PeerFeedback},
		{key: "managerComments", dst: &in.ManagerComments},
	}
}

func (in employeeInput) record() EmployeeRecord {
	return EmployeeRecord{
		Name:            *in.Name,
		ID:              *in.ID,
		Department:      *in.Department,
		Month:           *in.Month,
		TasksCompleted:  *in.TasksCompleted,
		GoalsMet:        *in.GoalsMet,
		PeerFeedback:    deref(in.PeerFeedback),
		ManagerComments: deref(in.ManagerComments),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
