// Package jsonwriter provides a streaming JSON token writer. It implements
// pass.Sink: callers push objects, arrays, property names and scalar values
// and the writer takes care of separators, indentation and string escaping.
// Keys are written in the order they are pushed, which is what lets pass.json
// follow the fixed key order the wallet platform expects.
//
// Methods do not return errors. The first failure, either from the
// underlying io.Writer or from a structural mistake such as a value without a
// property name, is kept and returned by Err; later calls are ignored.
package jsonwriter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"
)

var (
	// ErrStructure reports tokens pushed out of order.
	ErrStructure = errors.New("jsonwriter: invalid token sequence")
	// ErrInvalidValue reports values that cannot be represented in JSON.
	ErrInvalidValue = errors.New("jsonwriter: invalid value")
)

// Option customises a Writer.
type Option func(*Writer)

// WithIndent enables multi-line output, prefixing each line with prefix and
// indenting nested values with one copy of indent per level.
func WithIndent(prefix, indent string) Option {
	return func(w *Writer) {
		w.prefix = prefix
		w.indent = indent
		w.pretty = true
	}
}

type frame struct {
	object bool
	count  int
}

// Writer streams JSON tokens to an io.Writer.
type Writer struct {
	out    io.Writer
	buf    []byte
	stack  []frame
	named  bool
	done   bool
	err    error
	pretty bool
	prefix string
	indent string
}

// New returns a Writer emitting compact JSON to out unless WithIndent is
// supplied.
func New(out io.Writer, options ...Option) *Writer {
	w := &Writer{out: out}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Err returns the first error encountered, including an unfinished document.
func (w *Writer) Err() error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) > 0 {
		return fmt.Errorf("%w: %d unclosed container(s)", ErrStructure, len(w.stack))
	}
	return nil
}

func (w *Writer) BeginObject() { w.open(true, '{') }

func (w *Writer) EndObject() { w.close(true, '}') }

func (w *Writer) BeginArray() { w.open(false, '[') }

func (w *Writer) EndArray() { w.close(false, ']') }

// Name writes a property name. The next token must be its value.
func (w *Writer) Name(name string) {
	if w.err != nil {
		return
	}
	top := w.top()
	if top == nil || !top.object || w.named {
		w.fail(fmt.Errorf("%w: property name %q outside of an object", ErrStructure, name))
		return
	}
	w.buf = w.buf[:0]
	if top.count > 0 {
		w.buf = append(w.buf, ',')
	}
	top.count++
	w.buf = w.appendNewline(w.buf, len(w.stack))
	w.buf = appendQuoted(w.buf, name)
	w.buf = append(w.buf, ':')
	if w.pretty {
		w.buf = append(w.buf, ' ')
	}
	w.named = true
	w.flush()
}

func (w *Writer) String(v string) {
	w.scalar(func(dst []byte) []byte { return appendQuoted(dst, v) })
}

func (w *Writer) Bool(v bool) {
	w.scalar(func(dst []byte) []byte { return strconv.AppendBool(dst, v) })
}

func (w *Writer) Int(v int64) {
	w.scalar(func(dst []byte) []byte { return strconv.AppendInt(dst, v, 10) })
}

// Float writes v in the shortest decimal form that round-trips. NaN and
// infinities are rejected.
func (w *Writer) Float(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		w.fail(fmt.Errorf("%w: %v is not a JSON number", ErrInvalidValue, v))
		return
	}
	w.scalar(func(dst []byte) []byte { return strconv.AppendFloat(dst, v, 'f', -1, 64) })
}

// Decimal writes a decimal literal as a raw number.
func (w *Writer) Decimal(lexical string) {
	if !json.Valid([]byte(lexical)) {
		w.fail(fmt.Errorf("%w: decimal %q", ErrInvalidValue, lexical))
		return
	}
	w.scalar(func(dst []byte) []byte { return append(dst, lexical...) })
}

// Raw writes a pre-serialised JSON value. The fragment must be valid JSON.
func (w *Writer) Raw(fragment []byte) {
	if !json.Valid(fragment) {
		w.fail(fmt.Errorf("%w: raw fragment is not valid JSON", ErrInvalidValue))
		return
	}
	w.scalar(func(dst []byte) []byte { return append(dst, fragment...) })
}

func (w *Writer) open(object bool, token byte) {
	if w.err != nil {
		return
	}
	w.buf = w.buf[:0]
	if !w.beforeValue() {
		return
	}
	w.buf = append(w.buf, token)
	w.stack = append(w.stack, frame{object: object})
	w.flush()
}

func (w *Writer) close(object bool, token byte) {
	if w.err != nil {
		return
	}
	top := w.top()
	if top == nil || top.object != object || w.named {
		w.fail(fmt.Errorf("%w: unexpected %q", ErrStructure, token))
		return
	}
	count := top.count
	w.stack = w.stack[:len(w.stack)-1]
	w.buf = w.buf[:0]
	if count > 0 {
		w.buf = w.appendNewline(w.buf, len(w.stack))
	}
	w.buf = append(w.buf, token)
	if len(w.stack) == 0 {
		w.done = true
		if w.pretty {
			w.buf = append(w.buf, '\n')
		}
	}
	w.flush()
}

func (w *Writer) scalar(appendValue func([]byte) []byte) {
	if w.err != nil {
		return
	}
	w.buf = w.buf[:0]
	if !w.beforeValue() {
		return
	}
	w.buf = appendValue(w.buf)
	if len(w.stack) == 0 {
		w.done = true
	}
	w.flush()
}

// beforeValue appends the separator a value needs at the current position and
// reports whether a value is allowed there.
func (w *Writer) beforeValue() bool {
	top := w.top()
	switch {
	case top == nil:
		if w.done {
			w.fail(fmt.Errorf("%w: multiple top-level values", ErrStructure))
			return false
		}
	case top.object:
		if !w.named {
			w.fail(fmt.Errorf("%w: object value without a property name", ErrStructure))
			return false
		}
		w.named = false
	default:
		if top.count > 0 {
			w.buf = append(w.buf, ',')
		}
		top.count++
		w.buf = w.appendNewline(w.buf, len(w.stack))
	}
	return true
}

func (w *Writer) top() *frame {
	if len(w.stack) == 0 {
		return nil
	}
	return &w.stack[len(w.stack)-1]
}

func (w *Writer) appendNewline(dst []byte, depth int) []byte {
	if !w.pretty {
		return dst
	}
	dst = append(dst, '\n')
	dst = append(dst, w.prefix...)
	for i := 0; i < depth; i++ {
		dst = append(dst, w.indent...)
	}
	return dst
}

func (w *Writer) flush() {
	if len(w.buf) == 0 {
		return
	}
	if _, err := w.out.Write(w.buf); err != nil {
		w.fail(fmt.Errorf("jsonwriter: write: %w", err))
	}
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

const hex = "0123456789abcdef"

// appendQuoted appends s as a JSON string. HTML characters are left as-is;
// control characters, quotes, backslashes and U+2028/U+2029 are escaped and
// invalid UTF-8 is replaced with U+FFFD.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			dst = append(dst, s[start:i]...)
			switch c {
			case '"', '\\':
				dst = append(dst, '\\', c)
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				dst = append(dst, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, s[start:i]...)
			dst = append(dst, `\ufffd`...)
			i += size
			start = i
			continue
		}
		if r == '\u2028' || r == '\u2029' {
			dst = append(dst, s[start:i]...)
			dst = append(dst, '\\', 'u', '2', '0', '2', hex[r&0xF])
			i += size
			start = i
			continue
		}
		i += size
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}
