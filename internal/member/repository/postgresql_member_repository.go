package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cube/simple/internal/database"
	apperrors "github.com/cube/simple/internal/errors"
	memberDomain "github.com/cube/simple/internal/member/domain"
)

// PostgreSQLMemberRepository handles member persistence for PostgreSQL.
type PostgreSQLMemberRepository struct {
	db *sql.DB
}

// NewPostgreSQLMemberRepository creates a new PostgreSQLMemberRepository.
func NewPostgreSQLMemberRepository(db *sql.DB) *PostgreSQLMemberRepository {
	return &PostgreSQLMemberRepository{db: db}
}

// Create inserts a new member and sets member.Seq.
func (r *PostgreSQLMemberRepository) Create(ctx context.Context, member *memberDomain.Member) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO members (id, role, password, name, phone, description, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING seq`

	err := querier.QueryRowContext(
		ctx,
		query,
		member.ID,
		member.Role.String(),
		member.Password,
		member.Name,
		nullString(member.Phone),
		member.Description,
		member.CreatedAt,
		member.UpdatedAt,
	).Scan(&member.Seq)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return memberDomain.ErrMemberAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create member")
	}
	return nil
}

// Get retrieves a member by id.
func (r *PostgreSQLMemberRepository) Get(ctx context.Context, id string) (*memberDomain.Member, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	member, err := scanMember(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, memberDomain.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get member")
	}
	return member, nil
}

// List retrieves members ordered by seq.
func (r *PostgreSQLMemberRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*memberDomain.Member, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + memberColumns + ` FROM members ORDER BY seq ASC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list members")
	}
	defer func() {
		_ = rows.Close()
	}()

	members := make([]*memberDomain.Member, 0)
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan member")
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate members")
	}
	return members, nil
}

// Update overwrites the mutable member fields.
func (r *PostgreSQLMemberRepository) Update(ctx context.Context, member *memberDomain.Member) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE members SET role = $1, password = $2, name = $3, phone = $4, description = $5, updated_at = $6
			  WHERE id = $7`

	result, err := querier.ExecContext(
		ctx,
		query,
		member.Role.String(),
		member.Password,
		member.Name,
		nullString(member.Phone),
		member.Description,
		member.UpdatedAt,
		member.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update member")
	}
	return requireAffected(result)
}

// Delete removes a member by id.
func (r *PostgreSQLMemberRepository) Delete(ctx context.Context, id string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete member")
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return memberDomain.ErrMemberNotFound
	}
	return nil
}
