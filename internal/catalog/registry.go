package catalog

import (
	"fmt"
	"sync"
)

var (
	registry   = make(map[string]TargetField)
	order      []string
	registryMu sync.RWMutex
)

// Register adds a target field to the catalog.
// Panics if a field with the same name is already registered.
func Register(f TargetField) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[f.Name]; exists {
		panic(fmt.Sprintf("target field already registered: %s", f.Name))
	}

	registry[f.Name] = f
	order = append(order, f.Name)
}

// Lookup returns a target field by name.
// Returns false if not found.
func Lookup(name string) (TargetField, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[name]
	return f, ok
}

// All returns all registered target fields in registration order.
func All() []TargetField {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TargetField, 0, len(order))
	for _, name := range order {
		result = append(result, registry[name])
	}
	return result
}

// Len returns the number of registered target fields.
func Len() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// ResolveSemanticType returns the semantic type of a catalog field.
// Fails with *UnknownFieldError if the field is not registered.
func ResolveSemanticType(name string) (SemanticType, error) {
	f, ok := Lookup(name)
	if !ok {
		return Text, &UnknownFieldError{Field: name}
	}
	return f.Type, nil
}

// TypeOrText is the lenient form of ResolveSemanticType used on the
// transformation path: unknown fields are treated as Text.
func TypeOrText(name string) SemanticType {
	t, err := ResolveSemanticType(name)
	if err != nil {
		return Text
	}
	return t
}

// Options returns every catalog field formatted for a target field selector.
// Picklist fields carry default-value and restriction badges.
func Options() []Option {
	fields := All()
	opts := make([]Option, len(fields))
	for i, f := range fields {
		opts[i] = Option{
			Value:        f.Name,
			Label:        f.Name,
			SemanticType: f.Type,
			Badges:       badges(f),
		}
	}
	return opts
}

func badges(f TargetField) []string {
	if f.Type != Picklist {
		return nil
	}
	b := make([]string, 0, 2)
	if f.HasDefaultValue {
		b = append(b, "Has Default")
	} else {
		b = append(b, "No Default")
	}
	if f.IsRestricted {
		b = append(b, "Restricted")
	} else {
		b = append(b, "Not Restricted")
	}
	return b
}
