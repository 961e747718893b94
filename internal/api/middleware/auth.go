package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sorteo-app/raffles-api/internal/api/handler/v1/response"
	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/pkg/jwthelper"
)

// PrincipalKey is the gin context key the verified caller is stored under.
const PrincipalKey = "principal"

var errMissingToken = errors.New("missing or malformed authorization header")

// PrincipalResolver re-checks a decoded token identity against the store so
// revoked callers (deleted entities, deactivated managers) are rejected.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, p domain.Principal) error
}

type Authenticator struct {
	signingKey []byte
	resolver   PrincipalResolver
}

func NewAuthenticator(signingKey string, resolver PrincipalResolver) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		resolver:   resolver,
	}
}

// VerifyJWT parses the bearer token, re-validates the identity it names, and
// stores the principal in the gin context for handlers to pick up.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))

			return
		}

		principal, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		if err := a.resolver.ResolvePrincipal(ctx.Request.Context(), principal); err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		ctx.Set(PrincipalKey, principal)
		ctx.Next()
	}
}
