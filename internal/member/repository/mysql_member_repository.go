package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cube/simple/internal/database"
	apperrors "github.com/cube/simple/internal/errors"
	memberDomain "github.com/cube/simple/internal/member/domain"
)

// MySQLMemberRepository handles member persistence for MySQL.
type MySQLMemberRepository struct {
	db *sql.DB
}

// NewMySQLMemberRepository creates a new MySQLMemberRepository.
func NewMySQLMemberRepository(db *sql.DB) *MySQLMemberRepository {
	return &MySQLMemberRepository{db: db}
}

// Create inserts a new member and sets member.Seq from the auto-increment id.
func (r *MySQLMemberRepository) Create(ctx context.Context, member *memberDomain.Member) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO members (id, role, password, name, phone, description, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
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
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return memberDomain.ErrMemberAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create member")
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read member seq")
	}
	member.Seq = seq
	return nil
}

// Get retrieves a member by id.
func (r *MySQLMemberRepository) Get(ctx context.Context, id string) (*memberDomain.Member, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = ?`

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
func (r *MySQLMemberRepository) List(ctx context.Context, offset, limit int) ([]*memberDomain.Member, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + memberColumns + ` FROM members ORDER BY seq ASC LIMIT ? OFFSET ?`

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
func (r *MySQLMemberRepository) Update(ctx context.Context, member *memberDomain.Member) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE members SET role = ?, password = ?, name = ?, phone = ?, description = ?, updated_at = ?
			  WHERE id = ?`

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
func (r *MySQLMemberRepository) Delete(ctx context.Context, id string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete member")
	}
	return requireAffected(result)
}
