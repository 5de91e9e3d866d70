package view

import "errors"

var (
	// ErrTemplateNotFound is returned when no layer contains the named template.
	ErrTemplateNotFound = errors.New("view: template not found")
)
