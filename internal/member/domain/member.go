// Package domain defines the member entity and its sensitive-field manifest.
package domain

import (
	"time"

	authDomain "github.com/cube/simple/internal/auth/domain"
	"github.com/cube/simple/internal/crypto/transform"
	"github.com/cube/simple/internal/errors"
)

// Member is a registered account. ID is the login identifier and the token subject.
//
// At rest Password holds the credential hash and Name/Phone hold AES-GCM envelopes.
// After a read through MemberUseCase, Name and Phone are plaintext again.
type Member struct {
	Seq         int64
	ID          string
	Role        authDomain.Role
	Password    string
	Name        string
	Phone       *string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateMemberInput contains the data needed to register a member.
type CreateMemberInput struct {
	ID          string
	Password    string
	Role        authDomain.Role
	Name        string
	Phone       *string
	Description string
}

// UpdateMemberInput contains the mutable member fields. An empty Password keeps
// the stored credential. Role may differ from the stored role only when
// AllowRoleChange is set; the caller sets it for administrators.
type UpdateMemberInput struct {
	Password        string
	Role            authDomain.Role
	Name            string
	Phone           *string
	Description     string
	AllowRoleChange bool
}

// MemberManifest lists the transformed fields of Member: the password is hashed,
// name and phone are encrypted.
var MemberManifest = transform.NewManifest("Member",
	transform.HashableField("password", func(m *Member) *string { return &m.Password }),
	transform.EncryptableField("name", func(m *Member) *string { return &m.Name }),
	transform.NullableEncryptableField("phone", func(m *Member) **string { return &m.Phone }),
)

// Member errors.
var (
	// ErrMemberNotFound indicates the requested member does not exist.
	ErrMemberNotFound = errors.Wrap(errors.ErrNotFound, "member not found")

	// ErrMemberAlreadyExists indicates a member with the same id already exists.
	ErrMemberAlreadyExists = errors.Wrap(errors.ErrConflict, "member already exists")

	// ErrInvalidRole indicates an unknown role value.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")

	// ErrRoleChangeForbidden indicates a non-admin tried to change a stored role.
	ErrRoleChangeForbidden = errors.Wrap(errors.ErrForbidden, "only ADMIN may change a member role")
)
