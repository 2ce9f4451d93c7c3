package service

import (
	"context"

	"delegate/internal/core/domain"
	"delegate/internal/core/ports"
)

// OrgService answers visibility queries over the manager-reports hierarchy.
type OrgService struct {
	orgUsers ports.OrgUserRepository
}

func NewOrgService(orgUsers ports.OrgUserRepository) *OrgService {
	return &OrgService{orgUsers: orgUsers}
}

func (s *OrgService) VisibleUsers(ctx context.Context, orgID, actorID uint64) ([]domain.OrgUser, error) {
	users, err := s.orgUsers.ListByOrganisation(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return domain.UsersAtOrBelowRank(users, actorID), nil
}

var _ ports.OrgService = (*OrgService)(nil)
