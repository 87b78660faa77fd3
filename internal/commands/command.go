// Package commands parses palette input into typed commands and
// dispatches them to registered handlers. This is the only way the
// rendering layer reaches task mutations besides direct key bindings.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeAlarm  Type = "alarm"
	TypeDelete Type = "del"
	TypeShow   Type = "show"
	TypeSound  Type = "sound"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Day  string
	Time string
	Text string
}

type TaskArgs struct {
	ID int64
}

type ShowArgs struct {
	Day string
}

type SoundArgs struct {
	// Path to an audio file, or empty to clear the custom sound.
	Path string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *TaskArgs
	Alarm  *TaskArgs
	Delete *TaskArgs
	Show   *ShowArgs
	Sound  *SoundArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseTaskID(input, TypeDone, args)
	case TypeAlarm:
		return parseTaskID(input, TypeAlarm, args)
	case TypeDelete:
		return parseTaskID(input, TypeDelete, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeSound:
		return parseSound(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 3 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires day, time and text"}
	}
	text := strings.TrimSpace(strings.Join(args[2:], " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Day: args[0], Time: args[1], Text: text}}, nil
}

func parseTaskID(raw string, t Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", t)}
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %s", args[0])}
	}
	cmd := Command{Type: t, Raw: raw}
	switch t {
	case TypeDone:
		cmd.Done = &TaskArgs{ID: id}
	case TypeAlarm:
		cmd.Alarm = &TaskArgs{ID: id}
	case TypeDelete:
		cmd.Delete = &TaskArgs{ID: id}
	}
	return cmd, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a day"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Day: args[0]}}, nil
}

func parseSound(raw string, args []string) (Command, error) {
	path := strings.TrimSpace(strings.Join(args, " "))
	return Command{Type: TypeSound, Raw: raw, Sound: &SoundArgs{Path: path}}, nil
}
