package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/goliatone/go-passkit/pkg/jsonwriter"
	"github.com/goliatone/go-passkit/pkg/pass"
	"github.com/goliatone/go-passkit/pkg/template"
)

// ErrMissingIdentifier is wrapped by the errors WithRequiredIdentifiers reports.
var ErrMissingIdentifier = errors.New("generator: missing identifier")

// Option customises the generator configuration.
type Option func(*Generator)

// WithLogger sets the logger passed to every request written by the
// generator. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithIndent switches output to indented JSON.
func WithIndent(prefix, indent string) Option {
	return func(g *Generator) {
		g.indent = true
		g.prefix = prefix
		g.indentStr = indent
	}
}

// WithTemplateFS supplies the filesystem Request.Path is resolved against.
func WithTemplateFS(fsys fs.FS) Option {
	return func(g *Generator) {
		g.templateFS = fsys
	}
}

// WithSerialGenerator overrides how serial numbers are assigned to requests
// that do not set one. The default generates a random UUID. Pass nil to leave
// serial numbers empty.
func WithSerialGenerator(fn func() string) Option {
	return func(g *Generator) {
		g.serial = fn
	}
}

// WithRequiredIdentifiers makes Build fail when any of the standard
// identifiers (passTypeIdentifier, serialNumber, teamIdentifier,
// organizationName, description) is empty. All missing identifiers are
// reported together.
func WithRequiredIdentifiers() Option {
	return func(g *Generator) {
		g.requireIdentifiers = true
	}
}

// WithSanitizer replaces the attributed value sanitiser on every request. Nil
// disables sanitising.
func WithSanitizer(fn func(string) string) Option {
	return func(g *Generator) {
		g.sanitize = fn
		g.sanitizerSet = true
	}
}

// WithPopulator registers a hook that adds fields or tags to each request
// right before it is first written. Requests that already carry a hook keep
// their own, so building the same request again does not re-run it.
func WithPopulator(fn func(*pass.Request) error) Option {
	return func(g *Generator) {
		g.populate = fn
	}
}

// Generator coordinates template loading, request preparation and
// serialisation. Defaults are a discard logger, compact output and UUID serial
// numbers.
type Generator struct {
	logger             *slog.Logger
	indent             bool
	prefix             string
	indentStr          string
	templateFS         fs.FS
	serial             func() string
	requireIdentifiers bool
	sanitize           func(string) string
	sanitizerSet       bool
	populate           func(*pass.Request) error
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		serial: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Request describes where the pass comes from. The first non-empty source
// wins: Pass, then Definition, then Path (read from the template filesystem).
type Request struct {
	Pass       *pass.Request
	Definition *template.Definition
	Path       string
}

// Build resolves the request source and applies the generator's defaults. The
// returned request is ready to be written.
//
// A request passed in req.Pass is updated in place: a missing serial number is
// assigned, the logger and sanitiser are replaced, and the populate hook is
// installed unless the request already has one. Building and writing the same
// request again therefore yields the same document.
func (g *Generator) Build(ctx context.Context, req Request) (*pass.Request, error) {
	if ctx == nil {
		return nil, errors.New("generator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := g.resolve(req)
	if err != nil {
		return nil, err
	}

	if r.SerialNumber == "" && g.serial != nil {
		r.SerialNumber = g.serial()
		g.logger.Debug("assigned serial number", "serial", r.SerialNumber)
	}
	r.SetLogger(g.logger)
	if g.sanitizerSet {
		r.SetAttributedValueSanitizer(g.sanitize)
	}
	if g.populate != nil && !r.HasPopulator() {
		r.SetPopulator(g.populate)
	}

	if g.requireIdentifiers {
		if err := checkIdentifiers(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Generate builds the request and returns its pass.json document.
func (g *Generator) Generate(ctx context.Context, req Request) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.WriteTo(ctx, &buf, req); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo builds the request and streams its pass.json document to w.
func (g *Generator) WriteTo(ctx context.Context, w io.Writer, req Request) error {
	r, err := g.Build(ctx, req)
	if err != nil {
		return err
	}
	return g.Write(w, r)
}

// Write serialises an already built request with the generator's output
// settings.
func (g *Generator) Write(w io.Writer, r *pass.Request) error {
	var options []jsonwriter.Option
	if g.indent {
		options = append(options, jsonwriter.WithIndent(g.prefix, g.indentStr))
	}
	g.logger.Debug("writing pass", "style", r.Style.Key(), "serial", r.SerialNumber)
	if err := r.Write(jsonwriter.New(w, options...)); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}

// LocalizationFiles returns the pass.strings body of every language keyed by
// its bundle path, e.g. "fr.lproj/pass.strings".
func LocalizationFiles(r *pass.Request) map[string][]byte {
	out := make(map[string][]byte)
	for _, loc := range r.Localizations() {
		out[path.Join(loc.Language+".lproj", "pass.strings")] = loc.Strings()
	}
	return out
}

func (g *Generator) resolve(req Request) (*pass.Request, error) {
	switch {
	case req.Pass != nil:
		return req.Pass, nil
	case req.Definition != nil:
		r, err := req.Definition.Build(g.templateFS)
		if err != nil {
			return nil, fmt.Errorf("generator: build definition: %w", err)
		}
		return r, nil
	case req.Path != "":
		if g.templateFS == nil {
			return nil, fmt.Errorf("generator: template %s requested without a template filesystem", req.Path)
		}
		def, err := template.LoadFS(g.templateFS, req.Path)
		if err != nil {
			return nil, fmt.Errorf("generator: load template: %w", err)
		}
		g.logger.Debug("loaded template", "path", req.Path)
		r, err := def.Build(nil)
		if err != nil {
			return nil, fmt.Errorf("generator: build template %s: %w", req.Path, err)
		}
		return r, nil
	default:
		return nil, errors.New("generator: request has no pass, definition or path")
	}
}

func checkIdentifiers(r *pass.Request) error {
	identifiers := []struct {
		name  string
		value string
	}{
		{"passTypeIdentifier", r.PassTypeIdentifier},
		{"serialNumber", r.SerialNumber},
		{"teamIdentifier", r.TeamIdentifier},
		{"organizationName", r.OrganizationName},
		{"description", r.Description},
	}
	var errs []error
	for _, id := range identifiers {
		if id.value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingIdentifier, id.name))
		}
	}
	return errors.Join(errs...)
}
