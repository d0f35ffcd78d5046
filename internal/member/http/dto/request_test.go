package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/cube/simple/internal/auth/domain"
	memberDomain "github.com/cube/simple/internal/member/domain"
)

func ptr(s string) *string { return &s }

func TestCreateMemberRequest_Validate(t *testing.T) {
	valid := func() CreateMemberRequest {
		return CreateMemberRequest{
			ID:       "alice",
			Password: "password1",
			Name:     "Alice",
			Phone:    ptr("010-1234-5678"),
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *CreateMemberRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(r *CreateMemberRequest) {}},
		{name: "valid without phone", mutate: func(r *CreateMemberRequest) { r.Phone = nil }},
		{name: "valid with role", mutate: func(r *CreateMemberRequest) { r.Role = "OWNER" }},
		{name: "missing id", mutate: func(r *CreateMemberRequest) { r.ID = "" }, wantErr: "id"},
		{name: "id with spaces", mutate: func(r *CreateMemberRequest) { r.ID = "al ice" }, wantErr: "id"},
		{
			name:    "id too long",
			mutate:  func(r *CreateMemberRequest) { r.ID = strings.Repeat("a", 65) },
			wantErr: "id",
		},
		{name: "short password", mutate: func(r *CreateMemberRequest) { r.Password = "short" }, wantErr: "password"},
		{name: "unknown role", mutate: func(r *CreateMemberRequest) { r.Role = "ROOT" }, wantErr: "role"},
		{name: "blank name", mutate: func(r *CreateMemberRequest) { r.Name = "  " }, wantErr: "name"},
		{name: "bad phone", mutate: func(r *CreateMemberRequest) { r.Phone = ptr("call me") }, wantErr: "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUpdateMemberRequest_Validate(t *testing.T) {
	t.Run("EmptyPasswordAllowed", func(t *testing.T) {
		req := UpdateMemberRequest{Role: "USER", Name: "Alice"}
		assert.NoError(t, req.Validate())
	})

	t.Run("ShortPasswordRejected", func(t *testing.T) {
		req := UpdateMemberRequest{Password: "short", Role: "USER", Name: "Alice"}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password must be at least 8 characters")
	})

	t.Run("RoleRequired", func(t *testing.T) {
		req := UpdateMemberRequest{Name: "Alice"}
		assert.Error(t, req.Validate())
	})
}

func TestCreateMemberRequest_ToInput(t *testing.T) {
	req := CreateMemberRequest{ID: "alice", Password: "password1", Role: "ADMIN", Name: "Alice"}
	input := req.ToInput()

	assert.Equal(t, &memberDomain.CreateMemberInput{
		ID:       "alice",
		Password: "password1",
		Role:     authDomain.RoleAdmin,
		Name:     "Alice",
	}, input)
}

func TestMapMembersToListResponse(t *testing.T) {
	t.Run("EmptyPageIsEmptyArray", func(t *testing.T) {
		response := MapMembersToListResponse(nil)
		assert.NotNil(t, response.Data)
		assert.Len(t, response.Data, 0)
	})

	t.Run("CredentialNeverMapped", func(t *testing.T) {
		now := time.Now().UTC()
		response := MapMemberToResponse(&memberDomain.Member{
			Seq:       7,
			ID:        "alice",
			Role:      authDomain.RoleUser,
			Password:  "hash",
			Name:      "Alice",
			CreatedAt: now,
			UpdatedAt: now,
		})

		assert.Equal(t, int64(7), response.Seq)
		assert.Equal(t, "USER", response.Role)
		assert.Nil(t, response.Phone)
	})
}
