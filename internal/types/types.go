// Package types contains value primitives shared by the uri and header packages.
package types

//go:generate go tool errtrace -w .

import (
	"io"

	"github.com/google/go-cmp/cmp"
)

// Renderer renders a value in its SIP text form.
type Renderer interface {
	// Render renders the value to a string with the given options.
	Render(opts *RenderOptions) string
	// RenderTo renders the value to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions are options of rendering methods.
type RenderOptions struct {
	// Compact renders compact header names.
	Compact bool `json:"compact,omitempty" yaml:"compact,omitempty"`
}

type ValidFlag interface {
	IsValid() bool
}

// IsValid returns true if the value has method `IsValid() bool` and it returns true.
func IsValid(v any) bool {
	vv, ok := v.(ValidFlag)
	return ok && vv.IsValid()
}

type Equalable interface {
	Equal(val any) bool
}

// IsEqual reports whether the values are deeply equal, honoring their Equal methods.
func IsEqual(v1, v2 any) bool {
	return cmp.Equal(v1, v2)
}

type Cloneable[T any] interface {
	Clone() T
}
