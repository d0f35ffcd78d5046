package dto

import (
	"time"

	memberDomain "github.com/cube/simple/internal/member/domain"
)

// MemberResponse is the API view of a member. The credential is never included.
type MemberResponse struct {
	Seq         int64     `json:"seq"`
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	Name        string    `json:"name"`
	Phone       *string   `json:"phone"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListMembersResponse wraps a page of members.
type ListMembersResponse struct {
	Data []MemberResponse `json:"data"`
}

// MapMemberToResponse converts a domain member into the API response.
func MapMemberToResponse(member *memberDomain.Member) MemberResponse {
	return MemberResponse{
		Seq:         member.Seq,
		ID:          member.ID,
		Role:        member.Role.String(),
		Name:        member.Name,
		Phone:       member.Phone,
		Description: member.Description,
		CreatedAt:   member.CreatedAt,
		UpdatedAt:   member.UpdatedAt,
	}
}

// MapMembersToListResponse converts domain members into the list response.
// An empty page is rendered as an empty array.
func MapMembersToListResponse(members []*memberDomain.Member) ListMembersResponse {
	data := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		data = append(data, MapMemberToResponse(member))
	}
	return ListMembersResponse{Data: data}
}
