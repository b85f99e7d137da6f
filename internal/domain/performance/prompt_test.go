package performance

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	base := EmployeeRecord{
		Name:           "Ada Lovelace",
		ID:             "E-1",
		Department:     "Engineering",
		Month:          "March",
		TasksCompleted: 12,
		GoalsMet:       87.5,
	}

	t.Run("no optional clauses", func(t *testing.T) {
		got := BuildPrompt(base)
		require.Equal(t,
			"Generate a professional performance summary for Ada Lovelace, who worked in Engineering during March. "+
				"They completed 12 tasks and achieved 87.5% of their goals. "+
				"Make the summary concise and well-structured.",
			got)
		require.NotContains(t, got, "Peer feedback:")
		require.NotContains(t, got, "Manager comments:")
	})

	t.Run("both clauses in order", func(t *testing.T) {
		emp := base
		emp.PeerFeedback = "great teammate"
		emp.ManagerComments = "ready for promotion"
		got := BuildPrompt(emp)

		peer := strings.Index(got, "Peer feedback: great teammate. ")
		manager := strings.Index(got, "Manager comments: ready for promotion. ")
		require.NotEqual(t, -1, peer)
		require.NotEqual(t, -1, manager)
		require.Less(t, peer, manager)
		require.True(t, strings.HasSuffix(got, closingInstruction))
	})

	t.Run("manager only", func(t *testing.T) {
		emp := base
		emp.ManagerComments = "solid"
		got := BuildPrompt(emp)
		require.NotContains(t, got, "Peer feedback:")
		require.Contains(t, got, "Manager comments: solid. Make the summary")
	})
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 87.5, want: "87.5"},
		{in: 90, want: "90.0"},
		{in: 0, want: "0.0"},
		{in: -3.25, want: "-3.25"},
		{in: 0.1, want: "0.1"},
		{in: 1e20, want: "1e+20"},
		{in: math.Inf(1), want: "+Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, FormatFloat(tt.in))
		})
	}
}

func TestToSummaryRecordFormatsNumbers(t *testing.T) {
	rec := toSummaryRecord(EmployeeRecord{
		Name:           "Ada",
		ID:             "E-1",
		Department:     "Eng",
		Month:          "May",
		TasksCompleted: 12,
		GoalsMet:       87.5,
	}, "Solid month.")

	require.Equal(t, "12", rec.TasksCompleted)
	require.Equal(t, "87.5%", rec.GoalsMet)
	require.Equal(t, "", rec.PeerFeedback)
	require.Equal(t, "", rec.ManagerComments)
	require.Equal(t, "Solid month.", rec.Summary)
}
