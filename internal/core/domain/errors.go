package domain

import "errors"

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrTaskHierarchyCycle   = errors.New("task hierarchy cycle")
	ErrInvalidTransition    = errors.New("invalid task transition")
	ErrActionNotAllowed     = errors.New("action not allowed for actor")
	ErrDeadlineRequired     = errors.New("committed deadline required")
	ErrOrganisationMismatch = errors.New("task belongs to another organisation")
)
