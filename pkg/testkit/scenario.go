// Package testkit drives REST API tests from JSON scenario files.
//
// A scenario file holds an array of steps that run in order against one
// http.Handler. Each step describes:
//   - The HTTP request to fire (method, URL, inline body or body file, headers)
//   - The expected status code
//   - Expected fields of the JSON response, addressed by dot paths
//   - Values to capture from the response for later steps
//
// Captured values are substituted into later URLs, headers and bodies
// wherever {{name}} appears:
//
//	[
//	  {"name": "login", "requestMethod": "POST", "requestUrl": "/api/auth/login",
//	   "requestBody": {"username": "admin", "password": "secret1"},
//	   "expectedCode": 200, "capture": {"token": "token"}},
//	  {"name": "me", "requestUrl": "/api/auth/me",
//	   "headers": {"Authorization": "Bearer {{token}}"},
//	   "expectedCode": 200, "expectedFields": {"user.role": "Admin"}}
//	]
//
// Example _test.go:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunFlow(t, handler, "testdata/inventory_flow.json", nil)
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Scenario describes a single request/response step.
type Scenario struct {
	// Meta
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`   // GET, POST, PUT, PATCH, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /api/products?page=2
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline JSON body
	RequestFileName string            `json:"requestFileName"` // body file, relative to the scenario file
	Headers         map[string]string `json:"headers"`

	// Response assertions
	ExpectedCode       int                    `json:"expectedCode"`
	ExpectedStatusCode int                    `json:"expectedStatusCode"` // alias for expectedCode
	ExpectedFields     map[string]interface{} `json:"expectedFields"`     // dot path → value; "path.#" is a length
	ResponseFileName   string                 `json:"responseFileName"`   // whole-body comparison

	// Capture maps a variable name to the dot path of a response value.
	Capture map[string]string `json:"capture"`

	// resolved at load time, not part of the JSON
	dir string
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadScenario reads and validates a single scenario object from path.
func LoadScenario(path string) (*Scenario, error) {
	abs, data, err := read(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	s.dir = filepath.Dir(abs)

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	return &s, nil
}

// LoadScenarioArray reads and validates an ordered array of scenarios.
func LoadScenarioArray(path string) ([]*Scenario, error) {
	abs, data, err := read(path)
	if err != nil {
		return nil, err
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse scenario array %q: %w", abs, err)
	}

	dir := filepath.Dir(abs)
	for i, s := range scenarios {
		s.dir = dir
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: %q step %d: %w", abs, i, err)
		}
	}
	return scenarios, nil
}

func read(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}
	return abs, data, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		s.ExpectedCode = s.ExpectedStatusCode
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	if len(s.RequestBody) > 0 && s.RequestFileName != "" {
		return fmt.Errorf("requestBody and requestFileName are mutually exclusive")
	}
	return nil
}

// RequestBodyPath returns the absolute path of the request body file, or "".
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the absolute path of the expected response file, or "".
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
