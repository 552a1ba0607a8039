package domain

import "strings"

// FieldType enumerates the input kinds an admin can add to the quote form.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldSelect   FieldType = "select"
	FieldFile     FieldType = "file"
	FieldEmail    FieldType = "email"
)

// Known reports whether t is one of the supported field types.
func (t FieldType) Known() bool {
	switch t {
	case FieldText, FieldNumber, FieldTextarea, FieldCheckbox, FieldRadio, FieldSelect, FieldFile, FieldEmail:
		return true
	}
	return false
}

// HasOptions reports whether the type carries a configured option list.
func (t FieldType) HasOptions() bool {
	return t == FieldCheckbox || t == FieldRadio || t == FieldSelect
}

// FieldDefinition is one admin-configured input on the quote form.
// Options keeps the legacy storage layout: a single comma-separated
// string, parsed on demand with ParseOptions.
type FieldDefinition struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Options  string    `json:"options,omitempty"`
	Required bool      `json:"required"`
}

// OptionList returns the parsed options of a choice field.
func (f FieldDefinition) OptionList() []string {
	return ParseOptions(f.Options)
}

// FieldSchema is the ordered quote-form field list. There is exactly one
// current schema; Version increments on every full-replace save.
type FieldSchema struct {
	Version int               `json:"version"`
	Fields  []FieldDefinition `json:"fields"`
}

// HasField reports whether a field with the given name is configured.
func (s FieldSchema) HasField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// ParseOptions splits a comma-separated option string the way saved
// schemas have always been read: split on ",", trim each token, and
// drop only a single trailing empty token left by a trailing comma.
// Interior empty tokens and duplicates are preserved.
func ParseOptions(raw string) []string {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}
