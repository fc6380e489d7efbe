// Package catalog holds the target CRM field descriptors that source fields
// can be mapped onto.
//
// Descriptors are registered at init time (see fsc.go) and never change at
// runtime. The catalog answers two questions for the rest of the engine:
// which target fields exist, and what semantic type each one has. The
// semantic type decides which fix rules a mapping gets.
package catalog

import "fmt"

// SemanticType is the CRM data type of a target field.
type SemanticType int

const (
	Text SemanticType = iota
	TextArea
	Date
	DateTime
	Number
	Currency
	Percent
	Picklist
	Boolean
	Phone
)

var semanticTypeNames = map[SemanticType]string{
	Text:     "Text",
	TextArea: "Text Area",
	Date:     "Date",
	DateTime: "Date/Time",
	Number:   "Number",
	Currency: "Currency",
	Percent:  "Percent",
	Picklist: "Picklist",
	Boolean:  "Checkbox",
	Phone:    "Phone",
}

// String returns the CRM display name of the type.
func (t SemanticType) String() string {
	if name, ok := semanticTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SemanticType(%d)", int(t))
}

// MarshalText encodes the type by display name so JSON payloads stay readable.
func (t SemanticType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the display names produced by MarshalText.
func (t *SemanticType) UnmarshalText(b []byte) error {
	for k, v := range semanticTypeNames {
		if v == string(b) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown semantic type %q", string(b))
}

// TargetField describes one field of the target data model.
type TargetField struct {
	Name            string       // Object-qualified API name: "Account.FirstName"
	Type            SemanticType // Drives the default fix rule set
	HasDefaultValue bool         // Picklist metadata
	IsRestricted    bool         // Picklist metadata
}

// Object returns the object part of the qualified name ("Account").
func (f TargetField) Object() string {
	for i := 0; i < len(f.Name); i++ {
		if f.Name[i] == '.' {
			return f.Name[:i]
		}
	}
	return ""
}

// Option is a target field as offered by a selection widget.
type Option struct {
	Value        string       `json:"value"`
	Label        string       `json:"label"`
	SemanticType SemanticType `json:"semanticType"`
	Badges       []string     `json:"badges,omitempty"`
}

// UnknownFieldError is returned by strict lookups of a field that is not in
// the catalog.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown target field %q", e.Field)
}
