package member

// CreateMemberRequest represents the request to register a member
type CreateMemberRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}
