package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Done   func(TaskArgs) (Result, error)
	Alarm  func(TaskArgs) (Result, error)
	Delete func(TaskArgs) (Result, error)
	Show   func(ShowArgs) (Result, error)
	Sound  func(SoundArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeAlarm:
		if handlers.Alarm == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "alarm handler not configured"}
		}
		return handlers.Alarm(*cmd.Alarm)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "del handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	case TypeSound:
		if handlers.Sound == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "sound handler not configured"}
		}
		return handlers.Sound(*cmd.Sound)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
