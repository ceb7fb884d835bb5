// Package command turns input lines into task operations and renders the replies.
package command

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/MihkelHunter/kif/internal/todo"
)

// Name is a command word.
type Name string

const (
	NameList     Name = "list"
	NameMark     Name = "mark"
	NameUnmark   Name = "unmark"
	NameTodo     Name = "todo"
	NameDeadline Name = "deadline"
	NameEvent    Name = "event"
	NameDelete   Name = "delete"
	NameUndo     Name = "undo"
	NameBye      Name = "bye"
)

// ErrUnknownCommand is returned for a line whose first word is not a command.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a parsed input line. Only the fields used by Name are set.
type Command struct {
	Name        Name
	Position    int
	Description string
	By          string
	From        string
	To          string
}

var (
	byFlag   = regexp.MustCompile(`(?:^|\s)/by(?:\s|$)`)
	fromFlag = regexp.MustCompile(`(?:^|\s)/from(?:\s|$)`)
	toFlag   = regexp.MustCompile(`(?:^|\s)/to(?:\s|$)`)
)

// Parse reads one input line. The command word is case-insensitive.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	word, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		word, rest = line[:i], strings.TrimSpace(line[i:])
	}
	name := Name(strings.ToLower(word))

	switch name {
	case NameList, NameUndo, NameBye:
		if rest != "" {
			return Command{}, &todo.ValidationError{Reason: fmt.Sprintf("%s takes no arguments", name)}
		}
		return Command{Name: name}, nil
	case NameMark, NameUnmark, NameDelete:
		pos, err := parsePosition(name, rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Name: name, Position: pos}, nil
	case NameTodo:
		if rest == "" {
			return Command{}, &todo.ValidationError{Field: "description", Reason: "the description of a todo cannot be empty"}
		}
		return Command{Name: name, Description: rest}, nil
	case NameDeadline:
		return parseDeadline(rest)
	case NameEvent:
		return parseEvent(rest)
	default:
		return Command{}, fmt.Errorf("%q: %w", word, ErrUnknownCommand)
	}
}

func parsePosition(name Name, rest string) (int, error) {
	if rest == "" {
		return 0, &todo.ValidationError{Field: "position", Reason: fmt.Sprintf("%s needs a task number", name)}
	}
	pos, err := strconv.Atoi(rest)
	if err != nil {
		return 0, &todo.ValidationError{Field: "position", Reason: fmt.Sprintf("%q is not a task number", rest)}
	}
	return pos, nil
}

// cutFlag splits s around the first standalone occurrence of flag.
func cutFlag(s string, flag *regexp.Regexp) (before, after string, found bool) {
	loc := flag.FindStringIndex(s)
	if loc == nil {
		return s, "", false
	}
	return strings.TrimSpace(s[:loc[0]]), strings.TrimSpace(s[loc[1]:]), true
}

func parseDeadline(rest string) (Command, error) {
	desc, by, ok := cutFlag(rest, byFlag)
	if !ok {
		return Command{}, &todo.ValidationError{Field: "by", Reason: `a deadline needs "/by <yyyy-mm-dd>"`}
	}
	if desc == "" {
		return Command{}, &todo.ValidationError{Field: "description", Reason: "the description of a deadline cannot be empty"}
	}
	if by == "" {
		return Command{}, &todo.ValidationError{Field: "by", Reason: "the /by date cannot be empty"}
	}
	return Command{Name: NameDeadline, Description: desc, By: by}, nil
}

func parseEvent(rest string) (Command, error) {
	desc, span, ok := cutFlag(rest, fromFlag)
	if !ok {
		return Command{}, &todo.ValidationError{Field: "from", Reason: `an event needs "/from <start> /to <end>"`}
	}
	from, to, ok := cutFlag(span, toFlag)
	if !ok {
		return Command{}, &todo.ValidationError{Field: "to", Reason: `an event needs "/to <end>" after "/from"`}
	}
	switch {
	case desc == "":
		return Command{}, &todo.ValidationError{Field: "description", Reason: "the description of an event cannot be empty"}
	case from == "":
		return Command{}, &todo.ValidationError{Field: "from", Reason: "the /from value cannot be empty"}
	case to == "":
		return Command{}, &todo.ValidationError{Field: "to", Reason: "the /to value cannot be empty"}
	}
	return Command{Name: NameEvent, Description: desc, From: from, To: to}, nil
}
