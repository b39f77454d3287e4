// Package yamlutil wraps YAML encoding so the rest of blogmd never imports
// the YAML library directly. Config files and the store document go through
// here.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize is the default decode limit (1MB). Callers reading larger
// documents, such as the article store, raise it per call with MaxSize.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

type decodeOptions struct {
	strict  bool
	maxSize int
}

// Option configures Unmarshal.
type Option func(*decodeOptions)

// Strict rejects fields unknown to the destination type.
func Strict() Option {
	return func(o *decodeOptions) { o.strict = true }
}

// MaxSize overrides MaxInputSize for one call. Non-positive values are ignored.
func MaxSize(n int) Option {
	return func(o *decodeOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// Unmarshal decodes YAML (or JSON, which is a YAML subset) into v.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o := decodeOptions{maxSize: MaxInputSize}
	for _, opt := range opts {
		opt(&o)
	}

	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > o.maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), o.maxSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	var yopts []yaml.DecodeOption
	if o.strict {
		yopts = append(yopts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, yopts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict is Unmarshal with Strict.
func UnmarshalStrict(data []byte, v any) error {
	return Unmarshal(data, v, Strict())
}

// Marshal encodes v as block-style YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// MarshalJSON encodes v as a single-line JSON document.
func MarshalJSON(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.JSON())
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
