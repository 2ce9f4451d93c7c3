package dto

type UserRefItem struct {
	ID   uint64  `json:"id"`
	Name *string `json:"name,omitempty"`
}

type ActionItem struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type PendingItem struct {
	IsPending       bool         `json:"is_pending"`
	IsPendingFromMe bool         `json:"is_pending_from_me"`
	PendingFrom     *UserRefItem `json:"pending_from,omitempty"`
}

type TaskItem struct {
	ID                    uint64       `json:"id"`
	OrganisationID        uint64       `json:"organisation_id"`
	Title                 string       `json:"title"`
	Description           *string      `json:"description,omitempty"`
	CreatedBy             UserRefItem  `json:"created_by"`
	AssignedTo            UserRefItem  `json:"assigned_to"`
	ParentTaskID          *uint64      `json:"parent_task_id,omitempty"`
	Status                string       `json:"status"`
	Todo                  bool         `json:"todo"`
	Overdue               bool         `json:"overdue"`
	Deadline              *string      `json:"deadline,omitempty"`
	CommittedDeadline     *string      `json:"committed_deadline,omitempty"`
	CreatedAt             string       `json:"created_at"`
	UpdatedAt             string       `json:"updated_at"`
	ParticipantCount      int          `json:"participant_count"`
	LastActiveParticipant UserRefItem  `json:"last_active_participant"`
	Pending               PendingItem  `json:"pending"`
	AvailableActions      []ActionItem `json:"available_actions"`
}

// CreateTaskRequest names the assignee either by bare id or through the
// legacy "assignee" field, which carries a bare number, a user record, or a
// single-element list of records.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	AssigneeID  uint64  `json:"assignee_id" binding:"omitempty,gt=0"`
	Assignee    any     `json:"assignee" binding:"omitempty"`
	Deadline    *string `json:"deadline" binding:"omitempty"`
}

type AcceptTaskRequest struct {
	CommittedDeadline *string `json:"committed_deadline"`
}

type RejectTaskRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=65535"`
}

type EditDeadlineRequest struct {
	Deadline string `json:"deadline" binding:"required"`
}

type EditAssigneeRequest struct {
	AssigneeID uint64 `json:"assignee_id" binding:"required,gt=0"`
}

type OrgUserItem struct {
	ID                 uint64  `json:"id"`
	Name               string  `json:"name"`
	Role               string  `json:"role"`
	ReportingManagerID *uint64 `json:"reporting_manager_id,omitempty"`
}
