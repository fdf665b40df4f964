package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/handler/http/response"
)

type actorKey struct{}

// ActorRequired resolves the authenticated actor from the verified token's
// `sub` claim and stashes it in the request context. Mount after
// jwtauth.Verifier.
func ActorRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing token")
				return
			}

			actorID, _ := claims["sub"].(string)
			if actorID == "" {
				response.Unauthorized(w, "Token carries no actor identity")
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// ActorID returns the authenticated actor id stored by ActorRequired.
func ActorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(actorKey{}).(string)
	return id, ok
}
