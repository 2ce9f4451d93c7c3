package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delegate/internal/adapter/http/dto"
	"delegate/internal/adapter/http/validation"
)

func strPtr(s string) *string {
	return &s
}

func TestBuildCreateTaskInput_PlainAssigneeID(t *testing.T) {
	input, err := validation.BuildCreateTaskInput(dto.CreateTaskRequest{
		Title:      "Quarterly report",
		AssigneeID: 20,
		Deadline:   strPtr("2027-03-01T18:00:00Z"),
	}, 1)

	require.NoError(t, err)
	assert.Equal(t, uint64(1), input.OrganisationID)
	assert.Equal(t, uint64(20), input.AssignedTo.ID)
	require.NotNil(t, input.Deadline)
	assert.Equal(t, time.Date(2027, 3, 1, 18, 0, 0, 0, time.UTC), *input.Deadline)
}

func TestBuildCreateTaskInput_AssigneeAsBareNumber(t *testing.T) {
	// Decoded JSON numbers arrive as float64.
	input, err := validation.BuildCreateTaskInput(dto.CreateTaskRequest{
		Title:    "Quarterly report",
		Assignee: float64(20),
	}, 1)

	require.NoError(t, err)
	assert.Equal(t, uint64(20), input.AssignedTo.ID)
}

func TestBuildCreateTaskInput_AssigneeAsRecord(t *testing.T) {
	input, err := validation.BuildCreateTaskInput(dto.CreateTaskRequest{
		Title:    "Quarterly report",
		Assignee: map[string]any{"id": float64(20), "name": "Sam"},
	}, 1)

	require.NoError(t, err)
	assert.Equal(t, uint64(20), input.AssignedTo.ID)
	require.NotNil(t, input.AssignedTo.Name)
	assert.Equal(t, "Sam", *input.AssignedTo.Name)
}

func TestBuildCreateTaskInput_AssigneeAsSingleElementList(t *testing.T) {
	input, err := validation.BuildCreateTaskInput(dto.CreateTaskRequest{
		Title:    "Quarterly report",
		Assignee: []any{map[string]any{"id": float64(20)}},
	}, 1)

	require.NoError(t, err)
	assert.Equal(t, uint64(20), input.AssignedTo.ID)
}

func TestBuildCreateTaskInput_AssigneeIDWinsOverRecord(t *testing.T) {
	input, err := validation.BuildCreateTaskInput(dto.CreateTaskRequest{
		Title:      "Quarterly report",
		AssigneeID: 20,
		Assignee:   map[string]any{"id": float64(99)},
	}, 1)

	require.NoError(t, err)
	assert.Equal(t, uint64(20), input.AssignedTo.ID)
}

func TestBuildCreateTaskInput_RejectsUnresolvableAssignee(t *testing.T) {
	for _, assignee := range []any{
		nil,
		"not-a-number",
		float64(-3),
		float64(2.5),
		map[string]any{"name": "no id"},
		[]any{map[string]any{"id": float64(1)}, map[string]any{"id": float64(2)}},
	} {
		_, err := validation.BuildCreateTaskInput(dto.CreateTaskRequest{
			Title:    "Quarterly report",
			Assignee: assignee,
		}, 1)
		assert.ErrorIs(t, err, validation.ErrInvalidTaskPayload)
	}
}

func TestBuildCreateTaskInput_RejectsBlankTitle(t *testing.T) {
	_, err := validation.BuildCreateTaskInput(dto.CreateTaskRequest{
		Title:      "   ",
		AssigneeID: 20,
	}, 1)
	assert.ErrorIs(t, err, validation.ErrInvalidTaskPayload)
}

func TestBuildCreateTaskInput_RejectsMalformedDeadline(t *testing.T) {
	_, err := validation.BuildCreateTaskInput(dto.CreateTaskRequest{
		Title:      "Quarterly report",
		AssigneeID: 20,
		Deadline:   strPtr("2027-03-01"),
	}, 1)
	assert.ErrorIs(t, err, validation.ErrInvalidTaskPayload)
}
