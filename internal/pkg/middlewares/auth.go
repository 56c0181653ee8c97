package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"gdhotel.dev/backend/internal/app/appconfig"
	"gdhotel.dev/backend/internal/constant"
	"gdhotel.dev/backend/internal/pkg/apperr"
	"gdhotel.dev/backend/internal/pkg/flog"
)

// OwnerClaims are the claims the dashboard login issues. The core only ever
// consumes the resolved account id; everything else about the token is the
// gateway's concern.
type OwnerClaims struct {
	AccountID int `json:"uid"`
	jwt.RegisteredClaims
}

// Auth resolves the owner identity from a bearer token and stores the account
// id in the request locals. Requests without a resolvable owner never reach
// the handlers.
func Auth(conf *appconfig.Config) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperr.ErrAuthRequired
		}

		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return apperr.ErrAuthRequired.Msg("authentication required: malformed authorization header")
		}

		claims := &OwnerClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return conf.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			flog.WarnFrom(ctx).
				Err(err).
				Str("evt.name", "auth.token.rejected").
				Msg("rejected bearer token")
			return apperr.ErrAuthRequired.Msg("authentication required: invalid token")
		}
		if claims.AccountID <= 0 {
			return apperr.ErrAuthRequired.Msg("authentication required: token resolves no owner")
		}

		ctx.Locals(constant.ContextKeyAccountID, claims.AccountID)
		return ctx.Next()
	}
}

// AccountID extracts the owner account id resolved by Auth, if any.
func AccountID(ctx *fiber.Ctx) (int, bool) {
	id, ok := ctx.Locals(constant.ContextKeyAccountID).(int)
	return id, ok
}
