package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delegate/internal/core/domain"
)

func TestAccept(t *testing.T) {
	now := baseTime.Add(time.Hour)
	deadline := baseTime.Add(48 * time.Hour)
	tk := task(1, 10, 20, domain.TaskStatusPending)

	got, err := domain.Accept(tk, 20, timePtr(deadline), now)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusAccepted, got.Status)
	require.NotNil(t, got.CommittedDeadline)
	assert.Equal(t, deadline, *got.CommittedDeadline)
	assert.Equal(t, now, got.UpdatedAt)
	assert.False(t, got.IsPendingAcceptance())

	// The snapshot value is untouched.
	assert.Equal(t, domain.TaskStatusPending, tk.Status)
}

func TestAccept_RequiresDeadline(t *testing.T) {
	tk := task(1, 10, 20, domain.TaskStatusPending)
	_, err := domain.Accept(tk, 20, nil, baseTime)
	assert.ErrorIs(t, err, domain.ErrDeadlineRequired)
}

func TestAccept_OnlyAssigneeFromPending(t *testing.T) {
	deadline := timePtr(baseTime.Add(time.Hour))

	_, err := domain.Accept(task(1, 10, 20, domain.TaskStatusPending), 10, deadline, baseTime)
	assert.ErrorIs(t, err, domain.ErrActionNotAllowed)

	_, err = domain.Accept(task(1, 10, 20, domain.TaskStatusAccepted), 20, deadline, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = domain.Accept(task(1, 10, 20, domain.TaskStatusRejected), 20, deadline, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReject(t *testing.T) {
	got, err := domain.Reject(task(1, 10, 20, domain.TaskStatusPending), 20, baseTime)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusRejected, got.Status)

	_, err = domain.Reject(task(1, 10, 20, domain.TaskStatusPending), 10, baseTime)
	assert.ErrorIs(t, err, domain.ErrActionNotAllowed)

	_, err = domain.Reject(task(1, 10, 20, domain.TaskStatusAccepted), 20, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestComplete(t *testing.T) {
	got, err := domain.Complete(task(1, 10, 20, domain.TaskStatusAccepted), 10, baseTime)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, got.Status)

	// A to-do is completed by its sole owner/assignee.
	got, err = domain.Complete(task(2, 10, 10, domain.TaskStatusAccepted), 10, baseTime)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, got.Status)

	_, err = domain.Complete(task(3, 10, 20, domain.TaskStatusAccepted), 20, baseTime)
	assert.ErrorIs(t, err, domain.ErrActionNotAllowed)

	// Not while the assignee still has to accept or reject.
	_, err = domain.Complete(task(4, 10, 20, domain.TaskStatusPending), 10, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = domain.Complete(task(5, 10, 20, domain.TaskStatusCancelled), 10, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEditDeadline_UncommittedStaysUncommitted(t *testing.T) {
	tk := task(1, 10, 20, domain.TaskStatusPending)
	tk.Deadline = timePtr(baseTime.Add(24 * time.Hour))
	newDeadline := baseTime.Add(72 * time.Hour)

	got, err := domain.EditDeadline(tk, 20, newDeadline, baseTime)
	require.NoError(t, err)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, newDeadline, *got.Deadline)
	assert.Nil(t, got.CommittedDeadline)
	assert.False(t, got.IsAccepted())
}

func TestEditDeadline_CommittedFollows(t *testing.T) {
	tk := task(1, 10, 20, domain.TaskStatusAccepted)
	tk.Deadline = timePtr(baseTime.Add(24 * time.Hour))
	tk.CommittedDeadline = timePtr(baseTime.Add(24 * time.Hour))
	newDeadline := baseTime.Add(96 * time.Hour)

	got, err := domain.EditDeadline(tk, 10, newDeadline, baseTime)
	require.NoError(t, err)
	assert.Equal(t, newDeadline, *got.Deadline)
	require.NotNil(t, got.CommittedDeadline)
	assert.Equal(t, newDeadline, *got.CommittedDeadline)
}

func TestEditDeadline_Authorization(t *testing.T) {
	tk := task(1, 10, 20, domain.TaskStatusAccepted)

	_, err := domain.EditDeadline(tk, 99, baseTime, baseTime)
	assert.ErrorIs(t, err, domain.ErrActionNotAllowed)

	_, err = domain.EditDeadline(task(2, 10, 20, domain.TaskStatusCompleted), 10, baseTime, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEditPersons_SelfReassignmentMakesTodo(t *testing.T) {
	tk := task(1, 10, 20, domain.TaskStatusPending)
	tk.Deadline = timePtr(baseTime.Add(24 * time.Hour))

	got, err := domain.EditPersons(tk, 10, ref(10, "Owner"), baseTime)
	require.NoError(t, err)
	assert.True(t, got.IsTodo())
	assert.Equal(t, domain.TaskStatusAccepted, got.Status)
	require.NotNil(t, got.CommittedDeadline)
	assert.Equal(t, *tk.Deadline, *got.CommittedDeadline)
}

func TestEditPersons_SelfReassignmentKeepsExistingCommitment(t *testing.T) {
	tk := task(1, 10, 20, domain.TaskStatusAccepted)
	tk.Deadline = timePtr(baseTime.Add(24 * time.Hour))
	tk.CommittedDeadline = timePtr(baseTime.Add(12 * time.Hour))

	got, err := domain.EditPersons(tk, 10, ref(10, "Owner"), baseTime)
	require.NoError(t, err)
	assert.Equal(t, baseTime.Add(12*time.Hour), *got.CommittedDeadline)
}

func TestEditPersons_NewAssigneeRestartsAcceptance(t *testing.T) {
	tk := task(1, 10, 20, domain.TaskStatusAccepted)
	tk.CommittedDeadline = timePtr(baseTime.Add(24 * time.Hour))

	got, err := domain.EditPersons(tk, 10, ref(30, "New"), baseTime)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), got.AssignedTo.ID)
	assert.Equal(t, domain.TaskStatusPending, got.Status)
	assert.Nil(t, got.CommittedDeadline)
}

func TestEditPersons_SameAssigneeNoStateChange(t *testing.T) {
	tk := task(1, 10, 20, domain.TaskStatusAccepted)
	tk.CommittedDeadline = timePtr(baseTime.Add(24 * time.Hour))

	got, err := domain.EditPersons(tk, 10, ref(20, "Same"), baseTime)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusAccepted, got.Status)
	require.NotNil(t, got.CommittedDeadline)
	require.NotNil(t, got.AssignedTo.Name)
	assert.Equal(t, "Same", *got.AssignedTo.Name)
}

func TestEditPersons_OwnerOnly(t *testing.T) {
	tk := task(1, 10, 20, domain.TaskStatusAccepted)
	_, err := domain.EditPersons(tk, 20, ref(30, "New"), baseTime)
	assert.ErrorIs(t, err, domain.ErrActionNotAllowed)
}

func TestCascadeCancel_WholeActiveSubtree(t *testing.T) {
	root := task(1, 10, 20, domain.TaskStatusAccepted)
	child := subtask(2, 20, 30, 1, domain.TaskStatusAccepted)
	grandchild := subtask(3, 30, 40, 2, domain.TaskStatusPending)
	idx := domain.NewTaskIndex([]domain.Task{root, child, grandchild})

	cancelled, err := domain.CascadeCancel(root, 10, idx, baseTime)
	require.NoError(t, err)
	require.Len(t, cancelled, 3)

	for _, c := range cancelled {
		assert.Equal(t, domain.TaskStatusCancelled, c.Status)
	}
	// Descendants come before the root.
	assert.Equal(t, uint64(1), cancelled[len(cancelled)-1].ID)
}

func TestCascadeCancel_SkipsTerminalNodes(t *testing.T) {
	root := task(1, 10, 20, domain.TaskStatusAccepted)
	done := subtask(2, 20, 30, 1, domain.TaskStatusCompleted)
	buried := subtask(3, 30, 40, 2, domain.TaskStatusAccepted)
	idx := domain.NewTaskIndex([]domain.Task{root, done, buried})

	cancelled, err := domain.CascadeCancel(root, 10, idx, baseTime)
	require.NoError(t, err)
	// The completed child and everything behind it is left alone.
	require.Len(t, cancelled, 1)
	assert.Equal(t, uint64(1), cancelled[0].ID)
}

func TestCascadeCancel_IdempotentOnCancelledRoot(t *testing.T) {
	root := task(1, 10, 20, domain.TaskStatusCancelled)
	idx := domain.NewTaskIndex([]domain.Task{root})

	cancelled, err := domain.CascadeCancel(root, 10, idx, baseTime)
	require.NoError(t, err)
	assert.Empty(t, cancelled)
}

func TestCascadeCancel_OwnerOnly(t *testing.T) {
	root := task(1, 10, 20, domain.TaskStatusAccepted)
	idx := domain.NewTaskIndex([]domain.Task{root})

	_, err := domain.CascadeCancel(root, 20, idx, baseTime)
	assert.ErrorIs(t, err, domain.ErrActionNotAllowed)
}

func TestCascadeCancel_CycleFailsFast(t *testing.T) {
	a := subtask(1, 10, 20, 2, domain.TaskStatusAccepted)
	b := subtask(2, 10, 30, 1, domain.TaskStatusAccepted)
	idx := domain.NewTaskIndex([]domain.Task{a, b})

	_, err := domain.CascadeCancel(a, 10, idx, baseTime)
	assert.ErrorIs(t, err, domain.ErrTaskHierarchyCycle)
}

func TestNewTask_AssignmentStartsPending(t *testing.T) {
	input := domain.CreateTaskInput{
		OrganisationID: 1,
		Title:          "prepare report",
		AssignedTo:     ref(20, "Assignee"),
		Deadline:       timePtr(baseTime.Add(24 * time.Hour)),
	}

	got := domain.NewTask(input, ref(10, "Owner"), baseTime)
	assert.Equal(t, domain.TaskStatusPending, got.Status)
	assert.Nil(t, got.CommittedDeadline)
	assert.True(t, got.IsPendingAcceptance())
}

func TestNewTask_TodoAutoAccepts(t *testing.T) {
	input := domain.CreateTaskInput{
		OrganisationID: 1,
		Title:          "personal errand",
		AssignedTo:     ref(10, "Owner"),
		Deadline:       timePtr(baseTime.Add(24 * time.Hour)),
	}

	got := domain.NewTask(input, ref(10, "Owner"), baseTime)
	assert.Equal(t, domain.TaskStatusAccepted, got.Status)
	require.NotNil(t, got.CommittedDeadline)
	assert.Equal(t, *input.Deadline, *got.CommittedDeadline)
	assert.True(t, got.IsTodo())
}

func TestNewSubtask(t *testing.T) {
	parent := task(7, 10, 20, domain.TaskStatusAccepted)
	input := domain.CreateTaskInput{
		Title:      "dependency",
		AssignedTo: ref(30, "Helper"),
	}

	got, err := domain.NewSubtask(parent, ref(20, "Assignee"), input, baseTime)
	require.NoError(t, err)
	require.NotNil(t, got.ParentTaskID)
	assert.Equal(t, uint64(7), *got.ParentTaskID)
	assert.Equal(t, parent.OrganisationID, got.OrganisationID)
	assert.Equal(t, domain.TaskStatusPending, got.Status)
}

func TestNewSubtask_Guards(t *testing.T) {
	parent := task(7, 10, 20, domain.TaskStatusCancelled)
	_, err := domain.NewSubtask(parent, ref(20, "A"), domain.CreateTaskInput{Title: "x", AssignedTo: ref(30, "B")}, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	active := task(8, 10, 20, domain.TaskStatusAccepted)
	_, err = domain.NewSubtask(active, ref(20, "A"), domain.CreateTaskInput{OrganisationID: 99, Title: "x", AssignedTo: ref(30, "B")}, baseTime)
	assert.ErrorIs(t, err, domain.ErrOrganisationMismatch)
}
