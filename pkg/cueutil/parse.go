// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

type (
	// Result contains the outcome of a successful CUE decode operation.
	Result[T any] struct {
		// Value is the decoded Go struct.
		Value *T

		// Unified is the unified CUE value, available for advanced use
		// cases such as extracting metadata the struct does not carry.
		Unified cue.Value
	}

	// Option configures a Decode call.
	Option func(*options)

	options struct {
		filename string
		concrete bool
	}
)

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithoutConcrete disables the concreteness requirement during validation.
// By default every field must resolve to a concrete value.
func WithoutConcrete() Option {
	return func(o *options) { o.concrete = false }
}

// Decode performs the 3-step CUE parsing flow: compile the embedded schema,
// compile the user data and unify it with the schema definition at schemaPath
// (e.g. "#Matrix"), then validate and decode into T.
//
// Validation errors carry the offending file path and CUE path.
func Decode[T any](schema string, data []byte, schemaPath string, opts ...Option) (*Result[T], error) {
	o := options{concrete: true}
	for _, opt := range opts {
		opt(&o)
	}
	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)

	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &Result[T]{Value: &result, Unified: unified}, nil
}
