package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/mazad/goapi/base/ctx"
)

const RoleAdmin = "admin"

type JwtCustomClaims struct {
	UserId string   `json:"sub_id"`
	Roles  []string `json:"roles,omitempty"`
	jwt.StandardClaims
}

func (c *JwtCustomClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, actor Actor) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (Actor, error)
}
