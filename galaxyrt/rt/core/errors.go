package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter     = errors.New("invalid galaxy parameter")
	ErrMissingRenderSurface = errors.New("no render surface available")
	ErrShaderCompile        = errors.New("shader compile failure")
)

// ParamError reports a single rejected ParameterSet field.
type ParamError struct {
	Field string
	Value any
	Rule  string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%v (%s)", ErrInvalidParameter, e.Field, e.Value, e.Rule)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// ShaderError wraps a failed shader module or pipeline creation.
type ShaderError struct {
	Stage string
	Err   error
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrShaderCompile, e.Stage, e.Err)
}

func (e *ShaderError) Unwrap() []error { return []error{ErrShaderCompile, e.Err} }
