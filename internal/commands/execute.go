package commands

import "fmt"

type Outcome string

const (
	OutcomeAdded   Outcome = "added"
	OutcomeEdited  Outcome = "edited"
	OutcomeDeleted Outcome = "deleted"
	// OutcomeIgnored is a well formed edit or delete whose index is out of
	// range. Nothing changed and nothing is reported to the user.
	OutcomeIgnored Outcome = "ignored"
	OutcomeError   Outcome = "error"
)

type Result struct {
	Outcome Outcome
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Edit   func(EditArgs) (Result, error)
	Delete func(DeleteArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "edit handler not configured"}
		}
		return handlers.Edit(*cmd.Edit)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
