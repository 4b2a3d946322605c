package jsonwriter_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-passkit/pkg/jsonwriter"
)

func TestWriterCompact(t *testing.T) {
	var buf bytes.Buffer
	w := jsonwriter.New(&buf)

	w.BeginObject()
	w.Name("name")
	w.String("Skyline")
	w.Name("count")
	w.Int(math.MaxInt64)
	w.Name("ratio")
	w.Float(-122.029)
	w.Name("amount")
	w.Decimal("12.50")
	w.Name("ok")
	w.Bool(true)
	w.Name("empty")
	w.BeginArray()
	w.EndArray()
	w.Name("nested")
	w.BeginArray()
	w.BeginObject()
	w.EndObject()
	w.Raw([]byte(`{"a":1}`))
	w.EndArray()
	w.EndObject()

	if err := w.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"name":"Skyline","count":9223372036854775807,"ratio":-122.029,"amount":12.50,"ok":true,"empty":[],"nested":[{},{"a":1}]}`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriterIndented(t *testing.T) {
	var buf bytes.Buffer
	w := jsonwriter.New(&buf, jsonwriter.WithIndent("", "  "))

	w.BeginObject()
	w.Name("fields")
	w.BeginArray()
	w.String("a")
	w.String("b")
	w.EndArray()
	w.Name("none")
	w.BeginObject()
	w.EndObject()
	w.EndObject()

	if err := w.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"fields\": [\n    \"a\",\n    \"b\"\n  ],\n  \"none\": {}\n}\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriterEscapesStrings(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "quotes and backslash", input: `say "hi" \o/`, want: `"say \"hi\" \\o/"`},
		{name: "whitespace controls", input: "a\nb\rc\td", want: `"a\nb\rc\td"`},
		{name: "other controls", input: "\x00\x1f", want: `"\u0000\u001f"`},
		{name: "html kept", input: `<a href="x">&</a>`, want: `"<a href=\"x\">&</a>"`},
		{name: "unicode kept", input: "café €", want: "\"café €\""},
		{name: "line separators escaped", input: "a\u2028b\u2029", want: `"a\u2028b\u2029"`},
		{name: "invalid utf8 replaced", input: "a\xffb", want: `"a\ufffdb"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := jsonwriter.New(&buf)
			w.String(tc.input)
			if err := w.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("String(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestWriterStructureErrors(t *testing.T) {
	cases := []struct {
		name  string
		build func(w *jsonwriter.Writer)
	}{
		{name: "value without name", build: func(w *jsonwriter.Writer) {
			w.BeginObject()
			w.String("x")
		}},
		{name: "name in array", build: func(w *jsonwriter.Writer) {
			w.BeginArray()
			w.Name("x")
		}},
		{name: "mismatched close", build: func(w *jsonwriter.Writer) {
			w.BeginObject()
			w.EndArray()
		}},
		{name: "dangling name", build: func(w *jsonwriter.Writer) {
			w.BeginObject()
			w.Name("x")
			w.EndObject()
		}},
		{name: "second root value", build: func(w *jsonwriter.Writer) {
			w.Int(1)
			w.Int(2)
		}},
		{name: "unclosed container", build: func(w *jsonwriter.Writer) {
			w.BeginArray()
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := jsonwriter.New(&bytes.Buffer{})
			tc.build(w)
			if err := w.Err(); !errors.Is(err, jsonwriter.ErrStructure) {
				t.Fatalf("expected ErrStructure, got %v", err)
			}
		})
	}
}

func TestWriterInvalidValues(t *testing.T) {
	for name, build := range map[string]func(w *jsonwriter.Writer){
		"nan":          func(w *jsonwriter.Writer) { w.Float(math.NaN()) },
		"infinity":     func(w *jsonwriter.Writer) { w.Float(math.Inf(1)) },
		"decimal":      func(w *jsonwriter.Writer) { w.Decimal("12,5") },
		"raw fragment": func(w *jsonwriter.Writer) { w.Raw([]byte(`{"a":`)) },
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			w := jsonwriter.New(&buf)
			build(w)
			if err := w.Err(); !errors.Is(err, jsonwriter.ErrInvalidValue) {
				t.Fatalf("expected ErrInvalidValue, got %v", err)
			}
			if buf.Len() != 0 {
				t.Fatalf("expected nothing written, got %s", buf.String())
			}
		})
	}
}

func TestWriterKeepsFirstError(t *testing.T) {
	var buf bytes.Buffer
	w := jsonwriter.New(&buf)
	w.BeginObject()
	w.Float(math.NaN())
	w.EndArray()
	w.Name("after")
	w.String("ignored")

	if err := w.Err(); !errors.Is(err, jsonwriter.ErrInvalidValue) {
		t.Fatalf("expected first error to be kept, got %v", err)
	}
	if buf.String() != "{" {
		t.Fatalf("expected writes to stop after the error, got %s", buf.String())
	}
}
