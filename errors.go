package vividvalid

import "errors"

var (
	// ErrEmptyBatch is returned by ValidateBatch when no addresses are given.
	ErrEmptyBatch = errors.New("vividvalid: empty batch")
)
