package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-passkit/pkg/jsonwriter"
	"github.com/goliatone/go-passkit/pkg/pass"
	"github.com/goliatone/go-passkit/pkg/template"
)

// LoadDefinition reads a template fixture. Testing helpers fail the test on
// error to keep contract tests concise.
func LoadDefinition(t *testing.T, path string) *template.Definition {
	t.Helper()

	def, err := LoadDefinitionFromPath(path)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return def
}

// LoadDefinitionFromPath returns a Definition without requiring testing.T so
// callers can wire fixtures in setup functions.
func LoadDefinitionFromPath(path string) (*template.Definition, error) {
	if path == "" {
		return nil, errors.New("testsupport: definition path is required")
	}
	def, err := template.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load definition: %w", err)
	}
	return def, nil
}

// MustBuildRequest loads a template fixture and builds its request.
func MustBuildRequest(t *testing.T, path string) *pass.Request {
	t.Helper()

	req, err := LoadDefinition(t, path).Build(nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

// RenderIndented writes the request as two-space indented JSON, the format
// golden files are stored in.
func RenderIndented(t *testing.T, req *pass.Request) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := req.Write(jsonwriter.New(&buf, jsonwriter.WithIndent("", "  "))); err != nil {
		t.Fatalf("write request: %v", err)
	}
	return buf.Bytes()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// CompareJSON decodes both documents and diffs the resulting values, so
// whitespace differences are ignored. Numbers are compared by their literal
// spelling, which keeps 12.50 and 12.5 distinct.
func CompareJSON(want, got []byte) (string, error) {
	wantValue, err := decodeJSON(want)
	if err != nil {
		return "", fmt.Errorf("testsupport: decode want: %w", err)
	}
	gotValue, err := decodeJSON(got)
	if err != nil {
		return "", fmt.Errorf("testsupport: decode got: %w", err)
	}
	return cmp.Diff(wantValue, gotValue), nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares data with the golden file at path, rewriting the
// golden instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, data []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, data) {
		return
	}
	if diff := CompareGolden(MustReadGoldenString(t, path), string(data)); diff != "" {
		t.Fatalf("golden mismatch for %s (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
