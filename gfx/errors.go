package gfx

import "github.com/rotisserie/eris"

var (
	// ErrMissingField is returned by builders when a required input was not supplied.
	ErrMissingField = eris.New("missing required field")
	// ErrCompile is returned when the device rejects shader source.
	ErrCompile = eris.New("shader compilation failed")
	// ErrInvalidMesh is returned for vertex, index or uv data that cannot form a mesh.
	ErrInvalidMesh = eris.New("invalid mesh data")
	// ErrInvalidTexture is returned for images that cannot be uploaded.
	ErrInvalidTexture = eris.New("invalid texture")
)
