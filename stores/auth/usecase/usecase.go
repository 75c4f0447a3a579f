package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/ethereum"
	"github.com/x-xyz/settlement/domain"
)

const tokenTtl = 24 * time.Hour

type impl struct {
	jwtSecret []byte
	template  string
	now       func() time.Time
}

// New returns an auth usecase issuing HS256 tokens. template is formatted with
// the lowercased address to build the message a caller signs.
func New(jwtSecret, template string) domain.AuthUsecase {
	return &impl{
		jwtSecret: []byte(jwtSecret),
		template:  template,
		now:       time.Now,
	}
}

func (im *impl) SigningMessage(address domain.Address) string {
	return fmt.Sprintf(im.template, address.ToLower())
}

func (im *impl) SignIn(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	if address.IsEmpty() {
		return "", domain.ErrInvalidAddress
	}
	ok, err := ethereum.ValidateMsgSignature([]byte(im.SigningMessage(address)), signature, string(address))
	if err != nil {
		ctx.WithField("err", err).Warn("ethereum.ValidateMsgSignature failed")
		return "", xerrors.Errorf("%v: %w", err, domain.ErrInvalidSignature)
	} else if !ok {
		return "", domain.ErrInvalidSignature
	}
	return im.SignToken(ctx, address)
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address) (string, error) {
	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: im.now().Add(tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", domain.ErrInvalidSignature
}
