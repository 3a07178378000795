package group

import "github.com/google/uuid"

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=100"`
	Description *string     `json:"description,omitempty"`
	MemberIDs   []uuid.UUID `json:"member_ids,omitempty"`
}

// AddMembersRequest represents the request to add members to a group
type AddMembersRequest struct {
	MemberIDs []uuid.UUID `json:"member_ids" validate:"required,min=1"`
}
