package mapper

import (
	"time"

	"delegate/internal/adapter/http/dto"
	"delegate/internal/core/domain"
)

func ToTaskItems(views []domain.TaskView) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(views))
	for _, view := range views {
		items = append(items, ToTaskItem(view))
	}
	return items
}

func ToTaskItem(view domain.TaskView) dto.TaskItem {
	item := dto.TaskItem{
		ID:                    view.ID,
		OrganisationID:        view.OrganisationID,
		Title:                 view.Title,
		CreatedBy:             toUserRefItem(view.CreatedBy),
		AssignedTo:            toUserRefItem(view.AssignedTo),
		Status:                string(view.Status),
		Todo:                  view.IsTodo(),
		Overdue:               view.Overdue,
		CreatedAt:             view.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             view.UpdatedAt.Format(time.RFC3339),
		ParticipantCount:      view.ParticipantCount,
		LastActiveParticipant: toUserRefItem(view.LastActiveParticipant),
		Pending:               toPendingItem(view.Pending),
		AvailableActions:      toActionItems(view.AvailableActions),
	}

	if view.Description != nil {
		value := *view.Description
		item.Description = &value
	}

	if view.ParentTaskID != nil {
		value := *view.ParentTaskID
		item.ParentTaskID = &value
	}

	if view.Deadline != nil {
		value := view.Deadline.Format(time.RFC3339)
		item.Deadline = &value
	}

	if view.CommittedDeadline != nil {
		value := view.CommittedDeadline.Format(time.RFC3339)
		item.CommittedDeadline = &value
	}

	return item
}

func ToOrgUserItems(users []domain.OrgUser) []dto.OrgUserItem {
	items := make([]dto.OrgUserItem, 0, len(users))
	for _, user := range users {
		item := dto.OrgUserItem{
			ID:   user.ID,
			Name: user.Name,
			Role: string(user.Role),
		}
		if user.ReportingManagerID != nil {
			value := *user.ReportingManagerID
			item.ReportingManagerID = &value
		}
		items = append(items, item)
	}
	return items
}

func toUserRefItem(ref domain.UserRef) dto.UserRefItem {
	item := dto.UserRefItem{ID: ref.ID}
	if ref.Name != nil {
		value := *ref.Name
		item.Name = &value
	}
	return item
}

func toPendingItem(pending domain.PendingInfo) dto.PendingItem {
	item := dto.PendingItem{
		IsPending:       pending.IsPending,
		IsPendingFromMe: pending.IsPendingFromMe,
	}
	if pending.PendingFrom != nil {
		value := toUserRefItem(*pending.PendingFrom)
		item.PendingFrom = &value
	}
	return item
}

func toActionItems(actions []domain.Action) []dto.ActionItem {
	items := make([]dto.ActionItem, 0, len(actions))
	for _, action := range actions {
		items = append(items, dto.ActionItem{
			Type:        string(action.Type),
			Label:       action.Label,
			Description: action.Description,
		})
	}
	return items
}
