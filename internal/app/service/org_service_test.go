package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appservice "delegate/internal/app/service"
	"delegate/internal/core/domain"
)

func orgMember(id uint64, name string, managerID *uint64) domain.OrgUser {
	return domain.OrgUser{ID: id, OrganisationID: 1, Name: name, Role: domain.OrgRoleMember, ReportingManagerID: managerID}
}

func TestOrgService_VisibleUsers_FiltersByRank(t *testing.T) {
	repo := new(orgUserRepoMock)
	managerID := uint64(1)
	repo.On("ListByOrganisation", mock.Anything, uint64(1)).Return([]domain.OrgUser{
		orgMember(1, "boss", nil),
		orgMember(2, "lead", &managerID),
		orgMember(3, "peer lead", &managerID),
	}, nil).Once()

	svc := appservice.NewOrgService(repo)
	visible, err := svc.VisibleUsers(context.Background(), 1, 2)
	require.NoError(t, err)

	ids := make([]uint64, 0, len(visible))
	for _, u := range visible {
		ids = append(ids, u.ID)
	}
	require.ElementsMatch(t, []uint64{2, 3}, ids)
	repo.AssertExpectations(t)
}

func TestOrgService_VisibleUsers_UnrankedActorGetsEmpty(t *testing.T) {
	repo := new(orgUserRepoMock)
	repo.On("ListByOrganisation", mock.Anything, uint64(1)).Return([]domain.OrgUser{
		orgMember(1, "boss", nil),
	}, nil).Once()

	svc := appservice.NewOrgService(repo)
	visible, err := svc.VisibleUsers(context.Background(), 1, 99)
	require.NoError(t, err)
	require.Empty(t, visible)
}

func TestOrgService_VisibleUsers_RepositoryError(t *testing.T) {
	repo := new(orgUserRepoMock)
	repo.On("ListByOrganisation", mock.Anything, uint64(1)).Return(nil, errors.New("db is down")).Once()

	svc := appservice.NewOrgService(repo)
	_, err := svc.VisibleUsers(context.Background(), 1, 1)
	require.Error(t, err)
}
