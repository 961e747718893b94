package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sorteo-app/raffles-api/internal/api/middleware"
	"github.com/sorteo-app/raffles-api/internal/domain"
)

var errNoPrincipal = errors.New("no authenticated caller in request context")

// principalFromContext retrieves the caller the auth middleware verified.
// Reaching this with no principal means a route was mounted without the
// middleware, which is a programming error surfaced as 401.
func principalFromContext(ctx *gin.Context) (domain.Principal, error) {
	v, ok := ctx.Get(middleware.PrincipalKey)
	if !ok {
		return domain.Principal{}, errNoPrincipal
	}

	p, ok := v.(domain.Principal)
	if !ok {
		return domain.Principal{}, errNoPrincipal
	}

	return p, nil
}
