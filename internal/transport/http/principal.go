package http

import (
	"context"
	"net/http"
)

// The identity service terminates authentication upstream and conveys the
// authenticated principal as trusted headers. Handlers take the principal
// from context and do not re-verify credentials.
const (
	actorIDHeader   = "X-Actor-Id"
	actorRoleHeader = "X-Actor-Role"
)

type Role string

const (
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
)

type Principal struct {
	ID   string
	Role Role
}

type principalKey struct{}

// Identity extracts the principal headers set by the identity service and
// places a Principal in the request context. Requests without the headers
// pass through unauthenticated; handlers that need a principal reject them.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(actorIDHeader)
		role := r.Header.Get(actorRoleHeader)
		if id != "" && role != "" {
			ctx := context.WithValue(r.Context(), principalKey{}, Principal{
				ID:   id,
				Role: Role(role),
			})
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func principalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// requirePrincipal writes the appropriate error response and returns false
// when the request lacks a principal with the wanted role.
func requirePrincipal(w http.ResponseWriter, r *http.Request, role Role) (Principal, bool) {
	p, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
		return Principal{}, false
	}
	if role != "" && p.Role != role {
		writeError(w, http.StatusForbidden, codeForbidden, string(role)+" role required")
		return Principal{}, false
	}
	return p, true
}
