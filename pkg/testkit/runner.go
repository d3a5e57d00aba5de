package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ─── Public API ───────────────────────────────────────────────────────────────

// Run executes a single-scenario file against handler.
func Run(t *testing.T, handler http.Handler, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}
	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s, Vars{})
	})
}

// RunFlow executes an array of scenarios in order, threading captured values
// from step to step. vars seeds the substitutions and may be nil. The final
// variable set is returned. A failing step stops the flow.
func RunFlow(t *testing.T, handler http.Handler, path string, vars Vars) Vars {
	t.Helper()

	scenarios, err := LoadScenarioArray(path)
	if err != nil {
		t.Fatalf("testkit: %v", err)
	}

	if vars == nil {
		vars = Vars{}
	}
	for _, s := range scenarios {
		if !t.Run(s.Name, func(t *testing.T) { runScenario(t, handler, s, vars) }) {
			t.Fatalf("testkit: step %q failed; stopping flow", s.Name)
		}
	}
	return vars
}

// RunDir runs every *.json flow in dir, each with its own variables.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}
	for _, path := range entries {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".json"), func(t *testing.T) {
			RunFlow(t, handler, path, nil)
		})
	}
}

// ─── Internal execution ───────────────────────────────────────────────────────

func runScenario(t *testing.T, handler http.Handler, s *Scenario, vars Vars) {
	t.Helper()

	// ── 1. Build request ──────────────────────────────────────────────────

	var raw []byte
	switch {
	case len(s.RequestBody) > 0:
		raw = s.RequestBody
	case s.RequestBodyPath() != "":
		data, err := os.ReadFile(s.RequestBodyPath())
		if err != nil {
			t.Fatalf("[%s] read request file: %v", s.Name, err)
		}
		raw = data
	}

	var body io.Reader
	if raw != nil {
		body = bytes.NewReader([]byte(vars.Expand(string(raw))))
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), vars.Expand(s.RequestURL), body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, vars.Expand(v))
	}

	// ── 2. Fire ───────────────────────────────────────────────────────────

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// ── 3. Assert ─────────────────────────────────────────────────────────

	AssertStatusCode(t, s, rec.Code, rec.Body.Bytes())

	var doc interface{}
	if len(s.ExpectedFields) > 0 || len(s.Capture) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
			t.Fatalf("[%s] response is not JSON: %v\nbody: %s", s.Name, err, rec.Body.String())
		}
		AssertFields(t, s, doc)
	}

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
		} else {
			AssertJSONBody(t, s, []byte(vars.Expand(string(expected))), rec.Body.Bytes())
		}
	}

	// ── 4. Capture ────────────────────────────────────────────────────────

	for name, path := range s.Capture {
		v, ok := Lookup(doc, path)
		if !ok {
			t.Fatalf("[%s] capture %q: no value at %q", s.Name, name, path)
		}
		vars[name] = stringify(v)
	}
}
