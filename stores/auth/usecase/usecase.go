package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
)

const defaultTokenTtl = 24 * time.Hour

var timeNow = time.Now

type impl struct {
	jwtSecret []byte
	tokenTtl  time.Duration
	adminIds  map[domain.UserId]struct{}
}

// New returns the bearer token usecase. Users listed in adminIds are admins regardless of token roles.
func New(jwtSecret string, tokenTtl time.Duration, adminIds []string) domain.AuthUsecase {
	if tokenTtl <= 0 {
		tokenTtl = defaultTokenTtl
	}
	admins := make(map[domain.UserId]struct{}, len(adminIds))
	for _, id := range adminIds {
		admins[domain.UserId(id)] = struct{}{}
	}
	return &impl{
		jwtSecret: []byte(jwtSecret),
		tokenTtl:  tokenTtl,
		adminIds:  admins,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, actor domain.Actor) (string, error) {
	if actor.Id.IsEmpty() {
		return "", domain.ErrBadParamInput
	}

	claims := domain.JwtCustomClaims{
		UserId: actor.Id.String(),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  timeNow().Unix(),
			ExpiresAt: timeNow().Add(im.tokenTtl).Unix(),
		},
	}
	if actor.IsAdmin {
		claims.Roles = []string{domain.RoleAdmin}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (domain.Actor, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return domain.Actor{}, err
	}

	claims, ok := token.Claims.(*domain.JwtCustomClaims)
	if !ok || !token.Valid || claims.UserId == "" {
		return domain.Actor{}, fmt.Errorf("invalid token claims")
	}

	id := domain.UserId(claims.UserId)
	_, listed := im.adminIds[id]
	return domain.Actor{
		Id:      id,
		IsAdmin: listed || claims.HasRole(domain.RoleAdmin),
	}, nil
}
