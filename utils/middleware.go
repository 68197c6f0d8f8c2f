package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// CallerMiddleware extracts the verified claims and stores the caller's
// identity in context values for downstream handlers.
func CallerMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("userEmail", claims.Email)
	ctx.Next()
}

// AdminOnlyMiddleware is the cheap JWT-role gate in front of admin routes.
// The authoritative check is the admin-registry lookup inside the
// verification service; this only keeps obvious non-admins out early.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "admin access required"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("userEmail", claims.Email)
	ctx.Next()
}
