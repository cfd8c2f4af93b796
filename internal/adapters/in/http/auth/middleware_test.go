package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	a := newActor(t, true)
	valid, _, err := tokens.Issue(a)
	require.NoError(t, err)

	tests := map[string]struct {
		header string
		status int
	}{
		"valid bearer":   {header: "Bearer " + valid, status: http.StatusOK},
		"missing header": {header: "", status: http.StatusUnauthorized},
		"wrong scheme":   {header: "Basic " + valid, status: http.StatusUnauthorized},
		"bad token":      {header: "Bearer abc.def.ghi", status: http.StatusUnauthorized},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen bool
			handler := Middleware(tokens)(func(c echo.Context) error {
				caller, ok := ActorFrom(c)
				require.True(t, ok)
				assert.True(t, a.ID().IsEqual(caller.ID()))
				assert.True(t, caller.IsAdmin())
				seen = true
				return c.NoContent(http.StatusOK)
			})

			require.NoError(t, handler(c))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status == http.StatusOK, seen)
		})
	}
}

func TestActorFrom_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := ActorFrom(c)

	assert.False(t, ok)
}
