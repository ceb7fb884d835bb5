package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MihkelHunter/kif/internal/date"
	"github.com/MihkelHunter/kif/internal/todo"
)

// Separator delimits the fields of a stored line. Inside a field it is
// written as `\|`, and a backslash as `\\`.
const Separator = '|'

// MalformedRecordError reports a stored line that does not decode to a task.
type MalformedRecordError struct {
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// EncodeLine renders t as `done|description[|field2[|field3]]`.
func EncodeLine(t todo.Task) string {
	fields := []string{strconv.FormatBool(t.Done), t.Description}
	switch t.Kind {
	case todo.KindDeadline:
		fields = append(fields, t.Due.String())
	case todo.KindTimeRange:
		fields = append(fields, t.Start, t.End)
	}
	for i := range fields {
		fields[i] = escapeField(fields[i])
	}
	return strings.Join(fields, string(Separator))
}

// DecodeLine parses one stored line. The field count selects the kind:
// two for a plain task, three for a deadline, four for a time range.
func DecodeLine(line string) (todo.Task, error) {
	fields, err := splitFields(line)
	if err != nil {
		return todo.Task{}, err
	}
	if len(fields) < 2 || len(fields) > 4 {
		return todo.Task{}, fmt.Errorf("want 2 to 4 fields, got %d", len(fields))
	}

	done, err := parseBool(fields[0])
	if err != nil {
		return todo.Task{}, err
	}

	var t todo.Task
	switch len(fields) {
	case 2:
		t, err = todo.NewPlain(fields[1])
	case 3:
		var due date.Date
		due, err = date.Parse(fields[2])
		if err == nil {
			t, err = todo.NewDeadline(fields[1], due)
		}
	case 4:
		t, err = todo.NewTimeRange(fields[1], fields[2], fields[3])
	}
	if err != nil {
		return todo.Task{}, err
	}
	t.Done = done
	return t, nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("done flag %q is not true or false", s)
	}
}

func escapeField(s string) string {
	if !strings.ContainsAny(s, "\\|\n\r") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case Separator:
			b.WriteString(`\|`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitFields(line string) ([]string, error) {
	var (
		fields []string
		cur    strings.Builder
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch c {
		case '\\':
			if i+1 == len(line) {
				return nil, fmt.Errorf("dangling escape at end of line")
			}
			i++
			switch line[i] {
			case '\\':
				cur.WriteByte('\\')
			case Separator:
				cur.WriteByte(Separator)
			case 'n':
				cur.WriteByte('\n')
			case 'r':
				cur.WriteByte('\r')
			default:
				return nil, fmt.Errorf("unknown escape \\%c", line[i])
			}
		case Separator:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String()), nil
}
