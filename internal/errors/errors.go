package appErrors

import "fmt"

// ErrScenarioNotFound is a sentinel error
type ErrScenarioNotFound struct {
	ScenarioID int
}

func (e *ErrScenarioNotFound) Error() string {
	return fmt.Sprintf("scenario with ID %d not found", e.ScenarioID)
}

func NewScenarioNotFound(id int) error {
	return &ErrScenarioNotFound{ScenarioID: id}
}

// ErrConfigurationNotFound is a sentinel error
type ErrConfigurationNotFound struct {
	ConfigurationID int
}

func (e *ErrConfigurationNotFound) Error() string {
	return fmt.Sprintf("configuration with ID %d not found", e.ConfigurationID)
}

func NewConfigurationNotFound(id int) error {
	return &ErrConfigurationNotFound{ConfigurationID: id}
}

// ErrValidation marks a client-facing validation failure: missing field,
// invalid enum value, unmet prerequisites.
type ErrValidation struct {
	Reason string
}

func (e *ErrValidation) Error() string {
	return e.Reason
}

func NewValidation(format string, args ...any) error {
	return &ErrValidation{Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is one of the not-found sentinel types.
func IsNotFound(err error) bool {
	switch err.(type) {
	case *ErrScenarioNotFound, *ErrConfigurationNotFound:
		return true
	}
	return false
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	_, ok := err.(*ErrValidation)
	return ok
}
