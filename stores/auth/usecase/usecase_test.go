package usecase_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	c := ctx.Background()
	u := usecase.New("jwt-secret", time.Hour, []string{"ops-1"})

	tkn, err := u.SignToken(c, domain.Actor{Id: "user-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, tkn)
	actor, err := u.ParseToken(c, tkn)
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{Id: "user-1"}, actor)

	tkn, err = u.SignToken(c, domain.Actor{Id: "user-2", IsAdmin: true})
	require.NoError(t, err)
	actor, err = u.ParseToken(c, tkn)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin)

	tkn, err = u.SignToken(c, domain.Actor{Id: "ops-1"})
	require.NoError(t, err)
	actor, err = u.ParseToken(c, tkn)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin, "configured admin ids")

	_, err = u.SignToken(c, domain.Actor{})
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestParseTokenRejects(t *testing.T) {
	c := ctx.Background()
	u := usecase.New("jwt-secret", time.Hour, nil)

	other, err := usecase.New("other-secret", time.Hour, nil).SignToken(c, domain.Actor{Id: "user-1"})
	require.NoError(t, err)
	_, err = u.ParseToken(c, other)
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.JwtCustomClaims{
		UserId:         "user-1",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	})
	ss, err := expired.SignedString([]byte("jwt-secret"))
	require.NoError(t, err)
	_, err = u.ParseToken(c, ss)
	assert.Error(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.JwtCustomClaims{})
	ss, err = noSubject.SignedString([]byte("jwt-secret"))
	require.NoError(t, err)
	_, err = u.ParseToken(c, ss)
	assert.Error(t, err)

	_, err = u.ParseToken(c, "not-a-token")
	assert.Error(t, err)
}
