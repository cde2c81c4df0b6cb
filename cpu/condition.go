package cpu

import (
	"fmt"
	"strings"
)

const (
	CONDITION_PREFIX = "!" // Marks a condition line.
	WATCH_PREFIX     = "%" // Marks a watch line.
)

// Condition is a post-execution assertion that a memory cell equals a value.
type Condition struct {
	LineNo int    // Source line of the condition.
	Label  Label  // Memory cell to test.
	Value  uint16 // Expected value.
}

// Outcome is the result of evaluating a condition against memory.
type Outcome struct {
	Condition
	Actual uint16 // Value found in memory.
	Met    bool   // Set if Actual equals the expected value.
}

// ParseCondition parses a '!eq <label> <literal>' condition line.
func ParseCondition(line string) (cond Condition, err error) {
	words := strings.Fields(line)
	if len(words) == 0 || !strings.HasPrefix(words[0], CONDITION_PREFIX) {
		err = ErrConditionSyntax
		return
	}

	switch words[0] {
	case "!eq":
		if len(words) != 3 {
			err = ErrConditionSyntax
			return
		}
		var value uint16
		value, err = parseValue(words[2])
		if err != nil {
			return
		}
		cond = Condition{Label: Symbol(words[1]), Value: value}
	default:
		err = ErrConditionInvalid
		return
	}

	return
}

// Resolve returns the condition with its label resolved.
func (cond Condition) Resolve(table SymbolTable) (resolved Condition, err error) {
	resolved = cond
	resolved.Label, err = cond.Label.Resolve(table)
	return
}

// Evaluate tests the condition against memory.
func (cond Condition) Evaluate(mem *Memory) (outcome Outcome, err error) {
	address, err := cond.Label.Address()
	if err != nil {
		return
	}

	actual, err := mem.Read(address)
	if err != nil {
		return
	}

	outcome = Outcome{
		Condition: cond,
		Actual:    actual,
		Met:       actual == cond.Value,
	}
	return
}

// String returns the condition in assembly syntax.
func (cond Condition) String() string {
	return fmt.Sprintf("!eq %v %d", cond.Label, cond.Value)
}

// String reports the outcome.
func (outcome Outcome) String() string {
	if outcome.Met {
		return fmt.Sprintf("Condition met! Value: %d", outcome.Actual)
	}
	return fmt.Sprintf("Condition not met! Value: %d", outcome.Actual)
}

// Watch is a named memory cell reported after every executed instruction.
type Watch struct {
	LineNo int
	Name   string
	Label  Label
}

// ParseWatch parses a '%name' watch line.
func ParseWatch(line string) (watch Watch, err error) {
	words := strings.Fields(line)
	if len(words) != 1 || !strings.HasPrefix(words[0], WATCH_PREFIX) {
		err = ErrWatchSyntax
		return
	}

	name := strings.TrimPrefix(words[0], WATCH_PREFIX)
	if len(name) == 0 {
		err = ErrWatchSyntax
		return
	}

	watch = Watch{Name: name, Label: Symbol(name)}
	return
}

// Resolve returns the watch with its label resolved.
// A watch must name a cell inside memory.
func (watch Watch) Resolve(table SymbolTable) (resolved Watch, err error) {
	resolved = watch
	resolved.Label, err = watch.Label.Resolve(table)
	if err != nil {
		return
	}

	address := resolved.Label.Value
	if int(address) >= MEMORY_SIZE {
		err = ErrAddressOutOfRange(address)
		return
	}

	return
}
