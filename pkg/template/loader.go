package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format names a template encoding.
type Format string

const (
	// FormatAuto parses JSON when the document is valid JSON and YAML
	// otherwise.
	FormatAuto  Format = ""
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Unknown extensions
// map to FormatAuto.
func FormatFromPath(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".jsonc":
		return FormatJSONC
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// IsTemplateFile reports whether name has a template extension.
func IsTemplateFile(name string) bool {
	return FormatFromPath(name) != FormatAuto
}

// Parse decodes a definition. Images referenced by a parsed definition are
// resolved against the filesystem passed to Build.
func Parse(data []byte, format Format) (*Definition, error) {
	return parse(data, format, "<input>")
}

// LoadFS reads and parses the template at name from fsys. Image paths in the
// template are resolved relative to its directory within fsys.
func LoadFS(fsys fs.FS, name string) (*Definition, error) {
	if fsys == nil {
		return nil, fmt.Errorf("template: nil filesystem")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("template: read %s: %w", name, err)
	}
	def, err := parse(data, FormatFromPath(name), name)
	if err != nil {
		return nil, err
	}
	def.source = name
	def.fsys = fsys
	return def, nil
}

// LoadFile reads a template from the local filesystem.
func LoadFile(name string) (*Definition, error) {
	clean := filepath.Clean(name)
	return LoadFS(os.DirFS(filepath.Dir(clean)), filepath.Base(clean))
}

func parse(data []byte, format Format, source string) (*Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("template: file %s is empty", source)
	}

	if format == FormatAuto {
		format = FormatYAML
		if json.Valid(data) {
			format = FormatJSON
		}
	}

	var def Definition
	switch format {
	case FormatJSONC:
		if err := decodeJSON(jsonc.ToJSON(data), &def); err != nil {
			return nil, fmt.Errorf("template: parse %s: %w", source, err)
		}
	case FormatJSON:
		if err := decodeJSON(data, &def); err != nil {
			return nil, fmt.Errorf("template: parse %s: %w", source, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("template: parse %s: %w", source, err)
		}
	default:
		return nil, fmt.Errorf("template: unsupported format %q", format)
	}
	return &def, nil
}

// decodeJSON keeps userInfo numbers as json.Number so they are written back
// with their original spelling.
func decodeJSON(data []byte, def *Definition) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(def)
}

func (d *Definition) resolve(name string) string {
	if path.IsAbs(name) || d.source == "" {
		return path.Clean(strings.TrimPrefix(name, "/"))
	}
	return path.Join(path.Dir(d.source), name)
}
