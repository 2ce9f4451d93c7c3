package domain_test

import (
	"time"

	"delegate/internal/core/domain"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func ref(id uint64, name string) domain.UserRef {
	return domain.UserRef{ID: id, Name: &name}
}

func task(id, ownerID, assigneeID uint64, status domain.TaskStatus) domain.Task {
	return domain.Task{
		ID:             id,
		OrganisationID: 1,
		Title:          "task",
		CreatedBy:      domain.UserRef{ID: ownerID},
		AssignedTo:     domain.UserRef{ID: assigneeID},
		Status:         status,
		CreatedAt:      baseTime.Add(time.Duration(id) * time.Minute),
		UpdatedAt:      baseTime.Add(time.Duration(id) * time.Minute),
	}
}

func subtask(id, ownerID, assigneeID, parentID uint64, status domain.TaskStatus) domain.Task {
	t := task(id, ownerID, assigneeID, status)
	t.ParentTaskID = &parentID
	return t
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func managed(id, orgID uint64, name string, managerID *uint64) domain.OrgUser {
	return domain.OrgUser{
		ID:                 id,
		OrganisationID:     orgID,
		Name:               name,
		Role:               domain.OrgRoleMember,
		ReportingManagerID: managerID,
	}
}

func uintPtr(v uint64) *uint64 {
	return &v
}
