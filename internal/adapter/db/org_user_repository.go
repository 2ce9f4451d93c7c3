package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"delegate/internal/core/domain"
	"delegate/internal/core/ports"
)

const listOrgUsersQuery = `
SELECT * FROM org_users
WHERE organisation_id = ?
ORDER BY id;
`

const getOrgUserQuery = `
SELECT * FROM org_users
WHERE organisation_id = ? AND id = ?;
`

type OrgUserRepository struct {
	db *sqlx.DB
}

type orgUserRow struct {
	ID                 uint64        `db:"id"`
	OrganisationID     uint64        `db:"organisation_id"`
	Name               string        `db:"name"`
	Role               string        `db:"role"`
	ReportingManagerID sql.NullInt64 `db:"reporting_manager_id"`
	CreatedAt          time.Time     `db:"created_at"`
}

var _ ports.OrgUserRepository = (*OrgUserRepository)(nil)

func NewOrgUserRepository(db *sqlx.DB) *OrgUserRepository {
	return &OrgUserRepository{db: db}
}

func (r *OrgUserRepository) ListByOrganisation(ctx context.Context, orgID uint64) ([]domain.OrgUser, error) {
	var rows []orgUserRow
	if err := r.db.SelectContext(ctx, &rows, listOrgUsersQuery, orgID); err != nil {
		return nil, err
	}

	users := make([]domain.OrgUser, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapOrgUserRowToDomainUser(row))
	}
	return users, nil
}

func (r *OrgUserRepository) GetByID(ctx context.Context, orgID, userID uint64) (domain.OrgUser, error) {
	var row orgUserRow
	if err := r.db.GetContext(ctx, &row, getOrgUserQuery, orgID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrgUser{}, domain.ErrUserNotFound
		}
		return domain.OrgUser{}, err
	}
	return mapOrgUserRowToDomainUser(row), nil
}

func mapOrgUserRowToDomainUser(row orgUserRow) domain.OrgUser {
	user := domain.OrgUser{
		ID:             row.ID,
		OrganisationID: row.OrganisationID,
		Name:           row.Name,
		Role:           domain.OrgRole(row.Role),
		CreatedAt:      row.CreatedAt,
	}

	if row.ReportingManagerID.Valid {
		value := uint64(row.ReportingManagerID.Int64)
		user.ReportingManagerID = &value
	}

	return user
}
