package passkit

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-passkit/pkg/generator"
	"github.com/goliatone/go-passkit/pkg/pass"
	"github.com/goliatone/go-passkit/pkg/template"
)

// Request aliases pass.Request, the pass.json aggregate.
type Request = pass.Request

// Option aliases generator.Option for callers configuring NewGenerator.
type Option = generator.Option

// NewRequest returns an empty generic pass request.
func NewRequest() *pass.Request {
	return pass.NewRequest()
}

// NewGenerator exposes the generator constructor from the top-level module.
func NewGenerator(options ...generator.Option) *generator.Generator {
	return generator.New(options...)
}

// GenerateJSON writes a request as pass.json using the supplied options.
func GenerateJSON(ctx context.Context, req *pass.Request, options ...generator.Option) ([]byte, error) {
	return generator.New(options...).Generate(ctx, generator.Request{Pass: req})
}

// GenerateFromFile loads a template from the local filesystem and returns its
// pass.json document.
func GenerateFromFile(ctx context.Context, path string, options ...generator.Option) ([]byte, error) {
	def, err := template.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return generator.New(options...).Generate(ctx, generator.Request{Definition: def})
}

// GenerateFromFS loads a template from fsys and returns its pass.json
// document. Images are resolved relative to the template inside fsys.
func GenerateFromFS(ctx context.Context, fsys fs.FS, path string, options ...generator.Option) ([]byte, error) {
	options = append(options, generator.WithTemplateFS(fsys))
	return generator.New(options...).Generate(ctx, generator.Request{Path: path})
}

// LoadTemplate reads a template definition from the local filesystem.
func LoadTemplate(path string) (*template.Definition, error) {
	return template.LoadFile(path)
}
