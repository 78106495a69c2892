package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const LocalUserID = "user_id"

func parseBearer(ctx *fiber.Ctx, secret []byte) (jwt.MapClaims, bool) {
	authHeader := ctx.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// OptionalJwtMiddleware attaches the caller's user id when a token signed with secret is present.
// Anonymous shoppers pass through untouched. With an empty secret every caller is anonymous.
func OptionalJwtMiddleware(secret string) fiber.Handler {
	key := []byte(secret)
	return func(ctx *fiber.Ctx) error {
		if len(key) == 0 {
			return ctx.Next()
		}
		if claims, ok := parseBearer(ctx, key); ok {
			if id, ok := claims["user_id"].(string); ok {
				ctx.Locals(LocalUserID, id)
			}
		}
		return ctx.Next()
	}
}

// UserIDFromLocals returns "" for anonymous requests.
func UserIDFromLocals(ctx *fiber.Ctx) string {
	if v, ok := ctx.Locals(LocalUserID).(string); ok {
		return v
	}
	return ""
}
