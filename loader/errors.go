package loader

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrTooLarge indicates a document above the configured size limit.
	ErrTooLarge = errors.New("loader: document too large")

	// ErrSyntax indicates YAML that does not parse.
	ErrSyntax = errors.New("loader: invalid YAML")

	// ErrNotMapping indicates a document or group that is not a mapping.
	ErrNotMapping = errors.New("loader: expected a mapping")

	// ErrInvalidNode indicates a value of the wrong kind for its position.
	ErrInvalidNode = errors.New("loader: invalid node")
)

// nodeErrorf tags err with the node's position.
func nodeErrorf(n *yaml.Node, err error, format string, args ...interface{}) error {
	return fmt.Errorf("loader: line %d, column %d: %s: %w", n.Line, n.Column, fmt.Sprintf(format, args...), err)
}

// nodeError tags err with the node's position only; used when err already
// names the waveform.
func nodeError(n *yaml.Node, err error) error {
	return fmt.Errorf("loader: line %d, column %d: %w", n.Line, n.Column, err)
}
