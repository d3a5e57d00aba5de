package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/stockpile/pkg/auth"
)

func TestHasRole(t *testing.T) {
	h := HasRole("Admin", "Manager")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		role   string
		anon   bool
		status int
	}{
		{"admin", "Admin", false, http.StatusOK},
		{"manager", "Manager", false, http.StatusOK},
		{"clerk", "Clerk", false, http.StatusForbidden},
		{"anonymous", "", true, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
			if !tc.anon {
				req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{ID: 1, Role: tc.role}))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
