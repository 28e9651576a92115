package domain

import "fmt"

// MimeKindFile marks a parameter whose value is a local file path.
const MimeKindFile = "file"

// Parameter is one named entry submitted to an endpoint.
// Transports read parameters but never modify them.
type Parameter struct {
	// Name is the form field name
	Name string

	// Value is the text value, or the file path when MimeHint is MimeKindFile
	Value string

	// MimeHint is an optional kind hint supplied by the caller
	MimeHint string
}

// Text creates a plain text parameter.
func Text(name, value string) Parameter {
	return Parameter{Name: name, Value: value}
}

// File creates a file attachment parameter for the file at path.
func File(name, path string) Parameter {
	return Parameter{Name: name, Value: path, MimeHint: MimeKindFile}
}

// FromValue creates a parameter from an arbitrary value using its default
// string formatting, unless hint selects a file attachment.
func FromValue(name string, value interface{}, hint string) Parameter {
	return Parameter{Name: name, Value: fmt.Sprint(value), MimeHint: hint}
}

// IsFile reports whether the parameter is a file attachment.
func (p Parameter) IsFile() bool {
	return p.MimeHint == MimeKindFile
}
