package group

import (
	"time"

	"github.com/google/uuid"
)

// Group represents a set of members who share expenses
type Group struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated on detail reads
	MemberIDs []uuid.UUID `json:"member_ids,omitempty"`
}
