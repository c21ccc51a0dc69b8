// SPDX-License-Identifier: MIT
// Package: wavechain/config
//
// errors.go - sentinel errors for the configuration tree.

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrNameWithoutSlash indicates a waveform name that is not a path.
	ErrNameWithoutSlash = errors.New("config: waveform name must contain '/'")

	// ErrDuplicateWaveform indicates a waveform name already in the tree.
	ErrDuplicateWaveform = errors.New("config: duplicate waveform name")

	// ErrEmptyGroupName indicates a group without a name.
	ErrEmptyGroupName = errors.New("config: empty group name")

	// ErrInvalidGroupName indicates a group name containing '/'.
	ErrInvalidGroupName = errors.New("config: group name must not contain '/'")

	// ErrDuplicateGroup indicates a sibling group with the same name.
	ErrDuplicateGroup = errors.New("config: duplicate group name")

	// ErrUnknownGroup indicates a group path that does not exist.
	ErrUnknownGroup = errors.New("config: unknown group")

	// ErrUnknownWaveform indicates a name that is not in the tree.
	ErrUnknownWaveform = errors.New("config: unknown waveform")

	// ErrUnresolved indicates a derived waveform queried before Resolve.
	ErrUnresolved = errors.New("config: tree is not resolved")

	// ErrNilWaveform indicates AddWaveform called with nil.
	ErrNilWaveform = errors.New("config: waveform is nil")
)

func configErrorf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
}
