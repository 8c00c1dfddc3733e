package commands

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/habitd/internal/model"
)

const hintQuote = "Error! unterminated quote, please use format `add 'habit name'`"

// Interpret parses tokens and applies the command to the tracker. It never
// panics: malformed input comes back as an OutcomeError result.
func Interpret(tracker *model.Tracker, tokens []Token) Result {
	cmd, err := Parse(tokens)
	if err != nil {
		return errorResult(err)
	}
	res, err := Execute(cmd, TrackerHandlers(tracker))
	if err != nil {
		return errorResult(err)
	}
	return res
}

// Run tokenizes and interprets one command line.
func Run(tracker *model.Tracker, line string) Result {
	tokens, err := Tokenize(line)
	if err != nil {
		return errorResult(&CommandError{Code: ErrCodeBadQuoting, Message: hintQuote})
	}
	return Interpret(tracker, tokens)
}

// TrackerHandlers binds each verb to a tracker mutation.
func TrackerHandlers(tracker *model.Tracker) Handlers {
	return Handlers{
		Add: func(a AddArgs) (Result, error) {
			tracker.AddHabit(a.Label, a.Type)
			return Result{Outcome: OutcomeAdded, Message: fmt.Sprintf("added %s habit: %s", a.Type, a.Label)}, nil
		},
		Edit: func(e EditArgs) (Result, error) {
			if !tracker.RenameHabit(e.Index, e.Label) {
				return Result{Outcome: OutcomeIgnored}, nil
			}
			return Result{Outcome: OutcomeEdited, Message: fmt.Sprintf("renamed habit %d: %s", e.Index, e.Label)}, nil
		},
		Delete: func(d DeleteArgs) (Result, error) {
			if !tracker.DeleteHabit(d.Index) {
				return Result{Outcome: OutcomeIgnored}, nil
			}
			return Result{Outcome: OutcomeDeleted, Message: fmt.Sprintf("deleted habit %d", d.Index)}, nil
		},
	}
}

func errorResult(err error) Result {
	var ce *CommandError
	if errors.As(err, &ce) {
		return Result{Outcome: OutcomeError, Message: ce.Message}
	}
	return Result{Outcome: OutcomeError, Message: err.Error()}
}
