// Package repository provides PostgreSQL and MySQL persistence for members.
// Name and phone columns hold AES-GCM envelopes and password holds the credential
// hash; the repositories never see plaintext.
package repository

import (
	"database/sql"
	"strings"

	authDomain "github.com/cube/simple/internal/auth/domain"
	memberDomain "github.com/cube/simple/internal/member/domain"
)

const memberColumns = `seq, id, role, password, name, phone, description, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*memberDomain.Member, error) {
	var (
		member memberDomain.Member
		role   string
		phone  sql.NullString
	)
	err := row.Scan(
		&member.Seq,
		&member.ID,
		&role,
		&member.Password,
		&member.Name,
		&phone,
		&member.Description,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	member.Role = authDomain.Role(role)
	if phone.Valid {
		member.Phone = &phone.String
	}
	return &member, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
