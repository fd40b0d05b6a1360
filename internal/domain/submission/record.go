package submission

// RecordWidth is the number of columns in an appended row.
const RecordWidth = 6

// AnswerColumn is the zero-based position of the user's answer in a Record.
const AnswerColumn = 3

// Record is one append-only spreadsheet row. The array type fixes the width.
type Record [RecordWidth]string

// Template holds the passthrough columns that surround the answer. The
// placeholders are expanded by the upstream producer before the row is read;
// this service never interprets them.
type Template struct {
	Label     string
	Category  string
	Query     string
	Ticket    string
	Reference string
}

// DefaultTemplate mirrors the columns of the master sheet.
var DefaultTemplate = Template{
	Label:     "inquiry",
	Category:  "{{#1711528708197.type#}}",
	Query:     "{{#conversation.Initial_Query#}}",
	Ticket:    "{{#1711528708197.Zendesk#}}",
	Reference: "{{#1711528708197.Reference#}}",
}

// NewRecord builds the row for answer.
func NewRecord(tpl Template, answer string) Record {
	return Record{
		tpl.Label,
		tpl.Category,
		tpl.Query,
		answer,
		tpl.Ticket,
		tpl.Reference,
	}
}

// Values returns the row as the generic cell slice used by the Sheets API.
func (r Record) Values() []interface{} {
	out := make([]interface{}, 0, RecordWidth)
	for _, v := range r {
		out = append(out, v)
	}
	return out
}

// Answer returns the free-text answer column.
func (r Record) Answer() string {
	return r[AnswerColumn]
}
