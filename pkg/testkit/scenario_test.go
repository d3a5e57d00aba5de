package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestExpandAndLookup(t *testing.T) {
	v := Vars{"token": "abc", "id": "7"}
	assert.Equal(t, "Bearer abc /x/7 {{missing}}", v.Expand("Bearer {{token}} /x/{{ id }} {{missing}}"))

	var doc interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"orders":[{"id":3,"products":[]}],"total":1}`), &doc))

	got, ok := Lookup(doc, "orders.0.id")
	assert.True(t, ok)
	assert.Equal(t, 3.0, got)

	got, ok = Lookup(doc, "orders.0.products.#")
	assert.True(t, ok)
	assert.Equal(t, 0.0, got)

	_, ok = Lookup(doc, "orders.4.id")
	assert.False(t, ok)
}

func TestLoadScenarioArrayValidates(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.json", `[{"name":"no url","expectedCode":200}]`)

	_, err := LoadScenarioArray(p)
	assert.Error(t, err)

	p = writeFile(t, dir, "alias.json", `[{"name":"alias","requestUrl":"/x","expectedStatusCode":204}]`)
	scenarios, err := LoadScenarioArray(p)
	require.NoError(t, err)
	assert.Equal(t, 204, scenarios[0].ExpectedCode)
	assert.Equal(t, "GET", scenarios[0].RequestMethod)
}

func TestRunFlowThreadsCaptures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"t-123","user":{"id":42}}`)) //nolint:errcheck
	})
	mux.HandleFunc("GET /users/42", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t-123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"No token provided"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"id":42,"roles":["Admin","Clerk"]}`)) //nolint:errcheck
	})

	dir := t.TempDir()
	writeFile(t, dir, "user_res.json", `{"id":42,"roles":["Admin","Clerk"]}`)
	p := writeFile(t, dir, "flow.json", `[
		{"name":"login","requestMethod":"POST","requestUrl":"/login","requestBody":{"u":"a"},
		 "expectedCode":200,"capture":{"token":"token","uid":"user.id"}},
		{"name":"show","requestUrl":"/users/{{uid}}","headers":{"Authorization":"Bearer {{token}}"},
		 "expectedCode":200,"expectedFields":{"roles.#":2,"roles.1":"Clerk"},"responseFileName":"user_res.json"}
	]`)

	vars := RunFlow(t, mux, p, nil)
	assert.Equal(t, "t-123", vars["token"])
	assert.Equal(t, "42", vars["uid"])
}
