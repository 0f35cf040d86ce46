package core

import "errors"

// Common errors.
var (
	// ErrParse reports a front-matter block that cannot be decoded at all.
	ErrParse = errors.New("front matter could not be parsed")
	// ErrInvalidTree reports input that does not have the shape of a document tree.
	ErrInvalidTree = errors.New("invalid document tree")
)
