package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	mDomain "github.com/mazad/goapi/domain/mocks"
)

type authMiddlewareSuite struct {
	suite.Suite
	auth *mDomain.AuthUsecase
	e    *echo.Echo
	seen domain.Actor
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(authMiddlewareSuite))
}

func (s *authMiddlewareSuite) SetupTest() {
	s.auth = &mDomain.AuthUsecase{}
	s.seen = domain.Actor{}
	m := New(s.auth)

	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	record := func(c echo.Context) error {
		s.seen = ActorOf(c)
		return c.NoContent(http.StatusNoContent)
	}
	s.e.GET("/private", record, m.Auth())
	s.e.GET("/public", record, m.OptionalAuth())
	s.e.GET("/admin", record, m.Auth(), m.IsAdmin())

	s.auth.On("ParseToken", mock.Anything, "user-token").Return(domain.Actor{Id: "u1"}, nil)
	s.auth.On("ParseToken", mock.Anything, "admin-token").Return(domain.Actor{Id: "a1", IsAdmin: true}, nil)
	s.auth.On("ParseToken", mock.Anything, "bad-token").Return(domain.Actor{}, errors.New("signature is invalid"))
}

func (s *authMiddlewareSuite) do(path, token string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec.Code
}

func (s *authMiddlewareSuite) TestAuth() {
	s.Equal(http.StatusBadRequest, s.do("/private", ""))
	s.Equal(http.StatusUnauthorized, s.do("/private", "bad-token"))
	s.Equal(http.StatusNoContent, s.do("/private", "user-token"))
	s.Equal(domain.UserId("u1"), s.seen.Id)
}

func (s *authMiddlewareSuite) TestOptionalAuth() {
	s.Equal(http.StatusNoContent, s.do("/public", ""))
	s.Equal(domain.Actor{}, s.seen)
	s.Equal(http.StatusNoContent, s.do("/public", "user-token"))
	s.Equal(domain.UserId("u1"), s.seen.Id)
}

func (s *authMiddlewareSuite) TestIsAdmin() {
	s.Equal(http.StatusForbidden, s.do("/admin", "user-token"))
	s.Equal(http.StatusNoContent, s.do("/admin", "admin-token"))
	s.True(s.seen.IsAdmin)
}
