package ports

import (
	"context"

	"delegate/internal/core/domain"
)

type OrgUserRepository interface {
	ListByOrganisation(ctx context.Context, orgID uint64) ([]domain.OrgUser, error)
	GetByID(ctx context.Context, orgID, userID uint64) (domain.OrgUser, error)
}

type OrgService interface {
	// VisibleUsers returns the members the actor may see or search:
	// subordinates and depth peers within the actor's own tree, never
	// superiors or other trees. An empty result is a valid outcome for an
	// unranked actor.
	VisibleUsers(ctx context.Context, orgID, actorID uint64) ([]domain.OrgUser, error)
}
