package submission_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/answer-bridge/internal/domain/submission"
)

func TestNewRecordPlacesAnswerFourth(t *testing.T) {
	answers := []string{"", "Yes, confirmed", "multi\nline", "{{#not.expanded#}}"}
	for _, answer := range answers {
		rec := submission.NewRecord(submission.DefaultTemplate, answer)
		values := rec.Values()
		require.Len(t, values, 6)
		require.Equal(t, answer, values[3])
		require.Equal(t, answer, rec.Answer())
	}
}

func TestNewRecordColumnOrder(t *testing.T) {
	rec := submission.NewRecord(submission.Template{
		Label:     "l",
		Category:  "c",
		Query:     "q",
		Ticket:    "t",
		Reference: "r",
	}, "a")
	require.Equal(t, submission.Record{"l", "c", "q", "a", "t", "r"}, rec)
}

func TestDefaultTemplate(t *testing.T) {
	rec := submission.NewRecord(submission.DefaultTemplate, "x")
	require.Equal(t, "inquiry", rec[0])
	require.Equal(t, "{{#1711528708197.type#}}", rec[1])
	require.Equal(t, "{{#conversation.Initial_Query#}}", rec[2])
	require.Equal(t, "{{#1711528708197.Zendesk#}}", rec[4])
	require.Equal(t, "{{#1711528708197.Reference#}}", rec[5])
}
