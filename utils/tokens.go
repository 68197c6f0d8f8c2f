package utils

import (
	"context"
	"os"
	"time"

	"society-portal-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

// AccessToken is the claims payload of the access JWT. Email rides along so
// audit records can stamp the actor without a user lookup.
type AccessToken struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func CreateTokenPair(id uint, email, role string) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 24*time.Hour)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), 365*24*time.Hour)

	accessToken, err := accessTokenSigner.Sign(AccessToken{ID: id, Email: email, Role: role})
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshTokenSigner.Sign(jwt.Claims{Subject: email})
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	storage.Redis.Set(bgContext, string(refreshToken), "true", 365*24*time.Hour+5*time.Minute)

	return &tokenPair, nil
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken exchanges a redis-allowlisted refresh token for a fresh pair.
func RefreshToken(ctx iris.Context, lookup func(email string) (uint, string, bool)) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)

	if _, err := storage.Redis.Get(bgContext, tokenStr).Result(); err != nil {
		JSONError(ctx, iris.StatusNotFound, "not_found", "refresh token unknown or revoked")
		return
	}

	claims := jwt.Get(ctx).(*jwt.Claims)
	id, role, ok := lookup(claims.Subject)
	if !ok {
		JSONError(ctx, iris.StatusNotFound, "not_found", "user no longer exists")
		return
	}

	storage.Redis.Del(bgContext, tokenStr)

	pair, err := CreateTokenPair(id, claims.Subject, role)
	if err != nil {
		JSONError(ctx, iris.StatusInternalServerError, "server_error", "could not issue tokens")
		return
	}
	ctx.JSON(pair)
}
