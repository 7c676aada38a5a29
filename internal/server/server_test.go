package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/genogram/pkg/cache"
	"github.com/matzehuels/genogram/pkg/person"
	"github.com/matzehuels/genogram/pkg/pipeline"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, nil, logger)
	srv := httptest.NewServer(New(runner, logger).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv
}

func testPersons() []person.Record {
	return []person.Record{
		{ID: "adam", Name: "Adam", Gender: "male", SpouseIDs: []string{"eve"}},
		{ID: "eve", Name: "Eve", Gender: "female"},
		{ID: "cain", Gender: "male", FatherIDs: []string{"adam"}, MotherIDs: []string{"eve"}},
	}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestLayoutEndpoint(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/layout", map[string]any{"persons": testPersons()})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		PersonsHash string `json:"persons_hash"`
		Layout      struct {
			Shapes []struct {
				ID string `json:"id"`
			} `json:"shapes"`
		} `json:"layout"`
		Stats struct {
			PersonCount int `json:"person_count"`
		} `json:"stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if body.PersonsHash == "" {
		t.Error("persons_hash not set")
	}
	if len(body.Layout.Shapes) != 3 {
		t.Errorf("shapes = %d, want 3", len(body.Layout.Shapes))
	}
	if body.Stats.PersonCount != 3 {
		t.Errorf("person_count = %d, want 3", body.Stats.PersonCount)
	}
}

func TestLayoutEndpointRejectsEmptyPersons(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/layout", map[string]any{"persons": []person.Record{}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if code := decodeError(t, resp); code != "INVALID_INPUT" {
		t.Errorf("error code = %q, want INVALID_INPUT", code)
	}
}

func TestLayoutEndpointRejectsDuplicateIDs(t *testing.T) {
	srv := testServer(t)

	persons := []person.Record{
		{ID: "a", Gender: "male"},
		{ID: "a", Gender: "female"},
	}
	resp := postJSON(t, srv.URL+"/v1/layout", map[string]any{"persons": persons})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if code := decodeError(t, resp); code != "DUPLICATE_ID" {
		t.Errorf("error code = %q, want DUPLICATE_ID", code)
	}
}

func TestLayoutEndpointRejectsUnknownFields(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/layout", map[string]any{
		"persons": testPersons(),
		"bogus":   true,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLayoutEndpointRejectsBadOrientation(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/layout", map[string]any{
		"persons":     testPersons(),
		"orientation": "diagonal",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if code := decodeError(t, resp); code != "INVALID_ORIENTATION" {
		t.Errorf("error code = %q, want INVALID_ORIENTATION", code)
	}
}

func TestRenderEndpointSVG(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/render", map[string]any{
		"persons": testPersons(),
		"format":  "svg",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("response does not look like SVG")
	}
}

func TestRenderEndpointDefaultsToSVG(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/render", map[string]any{"persons": testPersons()})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
}

func TestRenderEndpointRejectsInvalidFormat(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/render", map[string]any{
		"persons": testPersons(),
		"format":  "gif",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if code := decodeError(t, resp); code != "INVALID_FORMAT" {
		t.Errorf("error code = %q, want INVALID_FORMAT", code)
	}
}
