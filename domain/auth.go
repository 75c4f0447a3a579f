package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/settlement/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"` // name data for backward compatibility
	jwt.StandardClaims
}

type AuthUsecase interface {
	// SignIn verifies signature over the signing message of address and issues a token
	SignIn(ctx ctx.Ctx, address Address, signature string) (string, error)
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
	SigningMessage(address Address) string
}

// Authorizer answers whether a caller holds administrative rights
type Authorizer interface {
	IsAdmin(c ctx.Ctx, caller Address) (bool, error)
}
