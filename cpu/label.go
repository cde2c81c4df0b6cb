package cpu

import (
	"fmt"
)

// SymbolTable maps symbol names to memory addresses.
type SymbolTable map[string]uint16

// Label is an operand address, either symbolic or resolved.
// A symbolic label becomes resolved exactly once, through Resolve, and
// the resolved form carries only the address.
type Label struct {
	Name     string // Symbol name, for unresolved labels.
	Value    uint16 // Resolved address or literal.
	Resolved bool   // Set once Value is valid.
}

// Symbol creates an unresolved, symbolic label.
func Symbol(name string) Label {
	return Label{Name: name}
}

// Address creates a resolved label for a numeric address or literal.
func Address(value uint16) Label {
	return Label{Value: value, Resolved: true}
}

// Resolve returns the label bound to its address in the symbol table.
// Labels that are already resolved are returned unchanged.
func (label Label) Resolve(table SymbolTable) (resolved Label, err error) {
	if label.Resolved {
		resolved = label
		return
	}

	value, ok := table[label.Name]
	if !ok {
		err = ErrLabelMissing(label.Name)
		return
	}

	resolved = Address(value)
	return
}

// Address returns the resolved address of the label.
func (label Label) Address() (value uint16, err error) {
	if !label.Resolved {
		err = ErrLabelUnresolved
		return
	}

	value = label.Value
	return
}

// String returns the address, or the symbol name if unresolved.
func (label Label) String() string {
	if !label.Resolved {
		return label.Name
	}

	return fmt.Sprintf("%d", label.Value)
}
