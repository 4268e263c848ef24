package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mazad/goapi/domain"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NewNotFound("Listing", "l-1"), http.StatusNotFound},
		{domain.NewConflict("Listing", "bmw-x5"), http.StatusConflict},
		{domain.NewForbidden("You are not allowed to manage this listing."), http.StatusForbidden},
		{domain.NewBusinessRule("Only active listings accept bids."), http.StatusBadRequest},
		{fmt.Errorf("%w: page", domain.ErrBadParamInput), http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", domain.ErrTransient), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, StatusOf(tt.err, http.StatusInternalServerError), tt.err.Error())
	}
}

func TestMakeJsonResp(t *testing.T) {
	e := echo.New()
	req := require.New(t)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	req.NoError(MakeJsonResp(c, http.StatusInternalServerError, domain.NewBusinessRule("The auction has already ended.")))
	req.Equal(http.StatusBadRequest, rec.Code)
	resp := JsonResponse{}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Equal(JsonResponseStatusFail, resp.Status)
	req.Equal("The auction has already ended.", resp.Data)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	req.NoError(MakeJsonResp(c, http.StatusInternalServerError, errors.New("mongo: connection reset")))
	req.Equal(http.StatusInternalServerError, rec.Code)
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Equal(domain.ErrInternalServerError.Error(), resp.Data)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	req.NoError(MakeJsonResp(c, http.StatusOK, map[string]string{"id": "b-1"}))
	req.Equal(http.StatusOK, rec.Code)
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Equal(JsonResponseStatusSuccess, resp.Status)
}
