// Package middleware carries request-scoped member identity. Authentication
// and account linking live outside this service; callers identify themselves
// with an opaque member id header and everything below the handler layer
// operates on that UUID alone.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// MemberIDKey is the context key for the requesting member's id.
const MemberIDKey ContextKey = "member_id"

// memberIDHeader names the request header carrying the caller's member id.
const memberIDHeader = "X-Member-ID"

// MemberIdentity extracts the caller's member id from the X-Member-ID header
// and stores it in the request context. Requests without a parseable id pass
// through anonymously; endpoints that need an identity check for it.
func MemberIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := uuid.Parse(r.Header.Get(memberIDHeader)); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), MemberIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// GetMemberID extracts the member id from the request context.
func GetMemberID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(MemberIDKey).(uuid.UUID)
	return id, ok
}
