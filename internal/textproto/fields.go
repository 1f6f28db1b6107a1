// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textproto

import "regexp"

// Field names a value mined from a block.
type Field string

const (
	FieldID      Field = "id"
	FieldName    Field = "name"
	FieldKind    Field = "kind"
	FieldA       Field = "a"
	FieldZ       Field = "z"
	FieldVariant Field = "variant"
)

// Fields maps each field found in a block to its first matched value.
// Absent fields have no key.
type Fields map[Field]string

// Get returns the value of f, or fallback when the block did not carry it.
func (fs Fields) Get(f Field, fallback string) string {
	if v, ok := fs[f]; ok {
		return v
	}
	return fallback
}

// quotedField builds a line-anchored pattern for `keyword: "value"`.
func quotedField(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*` + keyword + `[ \t]*:[ \t]*"([^"]+)"`)
}

var fieldPatterns = map[Field]*regexp.Regexp{
	FieldID:   quotedField("id"),
	FieldName: quotedField("name"),
	FieldA:    quotedField("a"),
	FieldZ:    quotedField("z"),

	// kind: RK_CONTAINS (an unquoted enum token)
	FieldKind: regexp.MustCompile(`(?m)^[ \t]*kind[ \t]*:[ \t]*([A-Za-z0-9_]+)`),

	// ek_port: {  (the entity-kind oneof; the ek_ prefix is stripped, and
	// the brace may open on the next line)
	FieldVariant: regexp.MustCompile(`(?m)^[ \t]*ek_([a-z0-9_]+)\s*:?\s*\{`),
}

// ExtractFields runs every field pattern independently against text and
// keeps the first match of each.
func ExtractFields(text string) Fields {
	fields := make(Fields, len(fieldPatterns))
	for f, re := range fieldPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			fields[f] = m[1]
		}
	}
	return fields
}
