package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/habitd/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeDelete Type = "delete"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
	ErrCodeBadQuoting      ErrorCode = "bad_quoting"
)

const (
	hintAdd     = "Error! please use format `add 'habit name' [type]`"
	hintEdit    = "Error! please use format `edit 1 'habit name'`"
	hintDelete  = "Error! please use format `delete 1`"
	hintIndex   = "Error! index must be a non-negative number"
	hintUnknown = "only add, edit & delete supported"
)

// CommandError carries a user facing Message; Code is for callers that
// branch on the failure kind.
type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Label string
	Type  model.HabitType
}

type EditArgs struct {
	Index int
	Label string
}

type DeleteArgs struct {
	Index int
}

type Command struct {
	Type   Type
	Add    *AddArgs
	Edit   *EditArgs
	Delete *DeleteArgs
}

// Parse validates verb and argument positions. The verb is matched case
// sensitively.
func Parse(tokens []Token) (Command, error) {
	tokens = trimWhitespace(tokens)
	if len(tokens) == 0 {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: hintUnknown}
	}

	head := tokens[0]
	args := tokens[1:]
	if head.Kind != KindWord {
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: hintUnknown}
	}

	switch Type(head.Text) {
	case TypeAdd:
		return parseAdd(args)
	case TypeEdit:
		return parseEdit(args)
	case TypeDelete:
		return parseDelete(args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: hintUnknown}
	}
}

func parseAdd(args []Token) (Command, error) {
	values, ok := positional(args)
	if !ok || len(values) < 1 || len(values) > 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: hintAdd}
	}
	label := values[0].Text
	if strings.TrimSpace(label) == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: hintAdd}
	}

	typ := model.HabitBoolean
	if len(values) == 2 {
		if _, err := strconv.Atoi(values[1].Text); err == nil {
			typ = model.HabitCounter
		} else {
			typ = model.HabitCharacter
		}
	}
	return Command{Type: TypeAdd, Add: &AddArgs{Label: label, Type: typ}}, nil
}

func parseEdit(args []Token) (Command, error) {
	values, ok := positional(args)
	if !ok || len(values) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: hintEdit}
	}
	index, err := parseIndex(values[0])
	if err != nil {
		return Command{}, err
	}
	label := values[1].Text
	if strings.TrimSpace(label) == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: hintEdit}
	}
	return Command{Type: TypeEdit, Edit: &EditArgs{Index: index, Label: label}}, nil
}

func parseDelete(args []Token) (Command, error) {
	values, ok := positional(args)
	if !ok || len(values) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: hintDelete}
	}
	index, err := parseIndex(values[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDelete, Delete: &DeleteArgs{Index: index}}, nil
}

func parseIndex(tok Token) (int, error) {
	n, err := strconv.Atoi(tok.Text)
	if err != nil || n < 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: hintIndex}
	}
	return n, nil
}

// positional extracts argument tokens from the tail of a command. The
// tail must alternate whitespace and argument tokens, starting with
// whitespace: whitespace sits on the even positions.
func positional(args []Token) ([]Token, bool) {
	if len(args)%2 != 0 {
		return nil, false
	}
	out := make([]Token, 0, len(args)/2)
	for i, tok := range args {
		isSpace := tok.Kind == KindWhitespace
		if (i%2 == 0) != isSpace {
			return nil, false
		}
		if !isSpace {
			out = append(out, tok)
		}
	}
	return out, true
}

func trimWhitespace(tokens []Token) []Token {
	start, end := 0, len(tokens)
	for start < end && tokens[start].Kind == KindWhitespace {
		start++
	}
	for end > start && tokens[end-1].Kind == KindWhitespace {
		end--
	}
	return tokens[start:end]
}
