package validation

import (
	"errors"
	"strings"
	"time"

	"delegate/internal/adapter/http/dto"
	"delegate/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput turns a create request into the domain input. The
// assignee resolves to a bare reference here; the service joins the name in.
func BuildCreateTaskInput(req dto.CreateTaskRequest, orgID uint64) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	assignee, err := resolveAssignee(req)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	deadline, err := parseOptionalTime(req.Deadline)
	if err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	return domain.CreateTaskInput{
		OrganisationID: orgID,
		Title:          title,
		Description:    req.Description,
		AssignedTo:     assignee,
		Deadline:       deadline,
	}, nil
}

// resolveAssignee prefers the plain assignee_id and falls back to the
// heterogeneous assignee field: a bare number, a record with id and name, or
// a single-element list of records.
func resolveAssignee(req dto.CreateTaskRequest) (domain.UserRef, error) {
	if req.AssigneeID != 0 {
		return domain.UserRef{ID: req.AssigneeID}, nil
	}
	ref := domain.ResolveUserRef(req.Assignee)
	if ref == nil {
		return domain.UserRef{}, ErrInvalidTaskPayload
	}
	return *ref, nil
}

// ParseDeadline parses a required RFC 3339 deadline value.
func ParseDeadline(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidTaskPayload
	}
	return parsed, nil
}

func parseOptionalTime(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ParseCommittedDeadline keeps the nil-ness of the accept payload: an accept
// without a deadline is a precondition error for the domain, not something
// to default here.
func ParseCommittedDeadline(value *string) (*time.Time, error) {
	return parseOptionalTime(value)
}
