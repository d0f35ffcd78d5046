// Package usecase implements member business logic. Sensitive fields are
// transformed at the write and read boundaries by the transform engine, so
// repositories only ever see hashed passwords and encrypted personal data.
package usecase

import (
	"context"

	memberDomain "github.com/cube/simple/internal/member/domain"
)

// MemberRepository defines persistence operations for members.
// Implementations must support transaction-aware operations via context propagation.
type MemberRepository interface {
	// Create stores a new member and sets its Seq.
	Create(ctx context.Context, member *memberDomain.Member) error

	// Get retrieves a member by id. Returns ErrMemberNotFound if not found.
	Get(ctx context.Context, id string) (*memberDomain.Member, error)

	// List returns members ordered by seq.
	List(ctx context.Context, offset, limit int) ([]*memberDomain.Member, error)

	// Update overwrites the mutable fields. Returns ErrMemberNotFound if not found.
	Update(ctx context.Context, member *memberDomain.Member) error

	// Delete removes a member. Returns ErrMemberNotFound if not found.
	Delete(ctx context.Context, id string) error
}

// MemberUseCase defines member operations with transparent field protection.
type MemberUseCase interface {
	// Create hashes the password and encrypts name and phone before storing.
	// The returned member carries plaintext name and phone and no password.
	Create(ctx context.Context, input *memberDomain.CreateMemberInput) (*memberDomain.Member, error)

	// Get returns a member with name and phone decrypted.
	Get(ctx context.Context, id string) (*memberDomain.Member, error)

	// List returns a page of members with name and phone decrypted, in seq order.
	List(ctx context.Context, offset, limit int) ([]*memberDomain.Member, error)

	// Update re-encrypts name and phone. The password is hashed only when a new
	// one is supplied.
	Update(ctx context.Context, id string, input *memberDomain.UpdateMemberInput) (*memberDomain.Member, error)

	// Delete removes a member.
	Delete(ctx context.Context, id string) error

	// Authenticate checks password against the stored credential hash.
	// Unknown ids and wrong passwords both return authDomain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, id, password string) (*memberDomain.Member, error)
}
