package diag

import (
	"errors"
	"fmt"
)

// Kind classifies a failure or a recorded substitution.
type Kind int

const (
	Unknown Kind = iota
	InputNotFound
	MalformedDocument
	InvalidDimension
	PathSyntaxError
	ColorResolutionFallback
	AttributeFallback
	UnsupportedGeometry
	SerializationError
	ConfigLoadError
	Timeout
)

var kindNames = map[Kind]string{
	Unknown:                 "unknown",
	InputNotFound:           "input_not_found",
	MalformedDocument:       "malformed_document",
	InvalidDimension:        "invalid_dimension",
	PathSyntaxError:         "path_syntax_error",
	ColorResolutionFallback: "color_resolution_fallback",
	AttributeFallback:       "attribute_fallback",
	UnsupportedGeometry:     "unsupported_geometry",
	SerializationError:      "serialization_error",
	ConfigLoadError:         "config_load_error",
	Timeout:                 "timeout",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText lets Kind appear by name in JSON and YAML reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Substitution reports whether the kind records a documented default
// rather than a dropped element.
func (k Kind) Substitution() bool {
	return k == ColorResolutionFallback || k == AttributeFallback
}

// Error is a document-level failure.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap attaches a kind and a path to err. A nil err stays nil.
func Wrap(kind Kind, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return Unknown
}

// Diagnostic is an element-level problem absorbed by the pipeline.
type Diagnostic struct {
	Kind      Kind   `json:"kind" yaml:"kind"`
	ElementID string `json:"element_id,omitempty" yaml:"element_id,omitempty"`
	Message   string `json:"message" yaml:"message"`
	// Offset into the offending attribute value, -1 when not applicable.
	Offset int `json:"offset" yaml:"offset"`
}

func (d Diagnostic) String() string {
	s := d.Kind.String()
	if d.ElementID != "" {
		s += " [" + d.ElementID + "]"
	}
	s += ": " + d.Message
	if d.Offset >= 0 {
		s += fmt.Sprintf(" (offset %d)", d.Offset)
	}
	return s
}

// New builds a Diagnostic without an offset.
func New(kind Kind, id, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, ElementID: id, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// Failures counts diagnostics that dropped an element.
func Failures(ds []Diagnostic) int {
	n := 0
	for _, d := range ds {
		if !d.Kind.Substitution() {
			n++
		}
	}
	return n
}
