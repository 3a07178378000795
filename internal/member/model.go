package member

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a participant in the ledger. The id is the only thing
// the splitting and settlement core ever sees; the display name exists for
// the API surface alone.
type Member struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
