// Package dto provides data transfer objects for the member endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/cube/simple/internal/auth/domain"
	memberDomain "github.com/cube/simple/internal/member/domain"
	customValidation "github.com/cube/simple/internal/validation"
)

var roleRule = validation.In(
	string(authDomain.RoleAdmin),
	string(authDomain.RoleOwner),
	string(authDomain.RoleUser),
).Error("must be one of ADMIN, OWNER, USER")

var passwordRule = customValidation.PasswordPolicy{MinLength: 8, MaxLength: 128}

// CreateMemberRequest contains the parameters for registering a member.
type CreateMemberRequest struct {
	ID          string  `json:"id"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	Name        string  `json:"name"`
	Phone       *string `json:"phone"`
	Description string  `json:"description"`
}

// Validate checks if the create request is valid.
func (r *CreateMemberRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.Required,
			customValidation.MemberID,
			validation.Length(1, 64),
		),
		validation.Field(&r.Password,
			validation.Required,
			passwordRule,
		),
		validation.Field(&r.Role, roleRule),
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Phone, customValidation.Phone),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

// ToInput converts the request into use case input.
func (r *CreateMemberRequest) ToInput() *memberDomain.CreateMemberInput {
	return &memberDomain.CreateMemberInput{
		ID:          r.ID,
		Password:    r.Password,
		Role:        authDomain.Role(r.Role),
		Name:        r.Name,
		Phone:       r.Phone,
		Description: r.Description,
	}
}

// UpdateMemberRequest replaces the mutable member fields. An omitted password
// keeps the current one.
type UpdateMemberRequest struct {
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	Name        string  `json:"name"`
	Phone       *string `json:"phone"`
	Description string  `json:"description"`
}

// Validate checks if the update request is valid.
func (r *UpdateMemberRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, passwordRule),
		validation.Field(&r.Role, validation.Required, roleRule),
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Phone, customValidation.Phone),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

// ToInput converts the request into use case input.
func (r *UpdateMemberRequest) ToInput() *memberDomain.UpdateMemberInput {
	return &memberDomain.UpdateMemberInput{
		Password:    r.Password,
		Role:        authDomain.Role(r.Role),
		Name:        r.Name,
		Phone:       r.Phone,
		Description: r.Description,
	}
}
