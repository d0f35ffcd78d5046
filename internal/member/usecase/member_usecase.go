package usecase

import (
	"context"
	"strings"
	"time"

	authDomain "github.com/cube/simple/internal/auth/domain"
	cryptoService "github.com/cube/simple/internal/crypto/service"
	"github.com/cube/simple/internal/crypto/transform"
	"github.com/cube/simple/internal/database"
	apperrors "github.com/cube/simple/internal/errors"
	memberDomain "github.com/cube/simple/internal/member/domain"
)

type memberUseCase struct {
	txManager  database.TxManager
	memberRepo MemberRepository
	engine     *transform.Engine
	hasher     cryptoService.CredentialHasher
}

// NewMemberUseCase creates a MemberUseCase. hasher must be the one the engine
// was built with so that Authenticate matches what Create stored.
func NewMemberUseCase(
	txManager database.TxManager,
	memberRepo MemberRepository,
	engine *transform.Engine,
	hasher cryptoService.CredentialHasher,
) MemberUseCase {
	return &memberUseCase{
		txManager:  txManager,
		memberRepo: memberRepo,
		engine:     engine,
		hasher:     hasher,
	}
}

func (m *memberUseCase) Create(
	ctx context.Context,
	input *memberDomain.CreateMemberInput,
) (*memberDomain.Member, error) {
	role := input.Role
	if role == "" {
		role = authDomain.RoleUser
	}
	if !role.Valid() {
		return nil, memberDomain.ErrInvalidRole
	}

	now := time.Now().UTC()
	member := &memberDomain.Member{
		ID:          strings.TrimSpace(input.ID),
		Role:        role,
		Password:    input.Password,
		Name:        input.Name,
		Phone:       input.Phone,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored := *member
	err := transform.BeforeWrite(
		m.engine,
		memberDomain.MemberManifest,
		transform.HashOnWrite|transform.EncryptOnWrite,
		&stored,
	)
	if err != nil {
		return nil, err
	}

	if err := m.memberRepo.Create(ctx, &stored); err != nil {
		return nil, err
	}

	member.Seq = stored.Seq
	member.Password = ""
	return member, nil
}

func (m *memberUseCase) Get(ctx context.Context, id string) (*memberDomain.Member, error) {
	member, err := m.memberRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := transform.Single[memberDomain.Member]{Value: member}
	if err := transform.AfterRead[memberDomain.Member](m.engine, memberDomain.MemberManifest, result); err != nil {
		return nil, err
	}
	return member, nil
}

func (m *memberUseCase) List(ctx context.Context, offset, limit int) ([]*memberDomain.Member, error) {
	members, err := m.memberRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	result := transform.Many[memberDomain.Member]{Values: members}
	if err := transform.AfterRead[memberDomain.Member](m.engine, memberDomain.MemberManifest, result); err != nil {
		return nil, err
	}
	return members, nil
}

func (m *memberUseCase) Update(
	ctx context.Context,
	id string,
	input *memberDomain.UpdateMemberInput,
) (*memberDomain.Member, error) {
	if input.Role != "" && !input.Role.Valid() {
		return nil, memberDomain.ErrInvalidRole
	}

	var updated *memberDomain.Member
	err := m.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := m.memberRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if input.Role != "" && input.Role != current.Role && !input.AllowRoleChange {
			return memberDomain.ErrRoleChangeForbidden
		}

		member := *current
		member.Name = input.Name
		member.Phone = input.Phone
		member.Description = input.Description
		member.UpdatedAt = time.Now().UTC()
		if input.Role != "" {
			member.Role = input.Role
		}

		ops := transform.EncryptOnWrite
		if input.Password != "" {
			member.Password = input.Password
			ops |= transform.HashOnWrite
		}

		view := member
		if err := transform.BeforeWrite(m.engine, memberDomain.MemberManifest, ops, &member); err != nil {
			return err
		}
		if err := m.memberRepo.Update(ctx, &member); err != nil {
			return err
		}

		view.Password = ""
		updated = &view
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (m *memberUseCase) Delete(ctx context.Context, id string) error {
	return m.memberRepo.Delete(ctx, id)
}

func (m *memberUseCase) Authenticate(ctx context.Context, id, password string) (*memberDomain.Member, error) {
	member, err := m.memberRepo.Get(ctx, id)
	if err != nil {
		if apperrors.Is(err, memberDomain.ErrMemberNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !m.hasher.Matches(password, member.Password) {
		return nil, authDomain.ErrInvalidCredentials
	}
	return member, nil
}
