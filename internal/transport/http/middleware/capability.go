package middleware

import (
	"context"
	"net/http"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/access"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/api"
)

// PermissionSource looks up the permission record for a user name.
// A nil record (no error) means the user has no grants at all.
type PermissionSource interface {
	GetByUserName(ctx context.Context, userName string) (*access.UserPermission, error)
}

// RequireCapability guards a mutation behind one permission flag.
// Admins bypass the check; everyone else needs a record whose flag is
// set. The refusal happens before the handler runs, so a denied
// request never touches a row.
func RequireCapability(capability access.Capability, source PermissionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if user.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			perm, err := source.GetByUserName(r.Context(), user.Name)
			if err != nil {
				api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", GetRequestID(r.Context()))
				return
			}
			if !access.Allowed(perm, capability) {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
