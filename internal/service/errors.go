package service

import "errors"

var (
	ErrAuthRequired       = errors.New("login required")
	ErrLocationRequired   = errors.New("please click on the map or use current location to set the issue location")
	ErrTextRequired       = errors.New("title and description are required")
	ErrUnknownIssueType   = errors.New("unknown issue type")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session is no longer valid")
)

// StepError - ошибка шага подачи заявки. Текст совпадает с исходной ошибкой.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}
