package performance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const closingInstruction = "Make the summary concise and well-structured."

// BuildPrompt renders the user prompt for one employee. Optional clauses are
// emitted only for non-empty values, peer feedback first.
func BuildPrompt(emp EmployeeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"Generate a professional performance summary for %s, who worked in %s during %s. "+
			"They completed %d tasks and achieved %s%% of their goals. ",
		emp.Name, emp.Department, emp.Month, emp.TasksCompleted, FormatFloat(emp.GoalsMet))
	if emp.PeerFeedback != "" {
		fmt.Fprintf(&b, "Peer feedback: %s. ", emp.PeerFeedback)
	}
	if emp.ManagerComments != "" {
		fmt.Fprintf(&b, "Manager comments: %s. ", emp.ManagerComments)
	}
	b.WriteString(closingInstruction)
	return b.String()
}

// FormatFloat renders f as the shortest decimal that round-trips. Integral
// values keep a ".0" suffix so 90 renders as "90.0".
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatPercent renders goalsMet for the output record.
func FormatPercent(f float64) string {
	return FormatFloat(f) + "%"
}

func toSummaryRecord(emp EmployeeRecord, summary string) SummaryRecord {
	return SummaryRecord{
		Name:            emp.Name,
		ID:              emp.ID,
		Department:      emp.Department,
		Month:           emp.Month,
		TasksCompleted:  strconv.Itoa(emp.TasksCompleted),
		GoalsMet:        FormatPercent(emp.GoalsMet),
		PeerFeedback:    emp.PeerFeedback,
		ManagerComments: emp.ManagerComments,
		Summary:         summary,
	}
}
