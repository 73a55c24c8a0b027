package eventfile

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// LoadError reports a definition that could not be parsed, with the CUE
// source position when one is known.
type LoadError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Load reads an event definition, choosing the format by file extension
// (.yaml, .yml or .cue).
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	case ".cue":
		return ParseCUE(path, data)
	default:
		return nil, &LoadError{Path: path, Message: "unsupported extension (want .yaml, .yml or .cue)"}
	}
}

// ParseYAML decodes a YAML definition. Unknown fields are rejected so typos
// surface instead of silently taking defaults.
func ParseYAML(path string, data []byte) (*Definition, error) {
	var def Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&def); err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}
	return &def, nil
}

// ParseCUE evaluates a CUE definition against the embedded #Definition
// schema and decodes the concrete result.
func ParseCUE(path string, data []byte) (*Definition, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile event schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(path, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Definition")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(path, err)
	}

	var def Definition
	if err := unified.Decode(&def); err != nil {
		return nil, formatCUEError(path, err)
	}
	return &def, nil
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(path string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Path: path, Message: err.Error()}
	}

	first := errs[0]
	le := &LoadError{Path: path, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
