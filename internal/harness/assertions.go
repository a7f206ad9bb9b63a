package harness

import (
	"fmt"
)

// checkExpect compares a step outcome against its expect clause and returns
// one message per mismatch.
func checkExpect(want Expect, got TraceEvent) []string {
	var msgs []string

	if want.Error != "" {
		if got.Error != want.Error {
			msgs = append(msgs, fmt.Sprintf("expected error %s, got %s", want.Error, describeError(got.Error)))
		}
	} else if got.Error != "" {
		msgs = append(msgs, fmt.Sprintf("unexpected error %s", got.Error))
	}

	if want.ID != nil && got.ID != *want.ID {
		msgs = append(msgs, fmt.Sprintf("expected id %d, got %d", *want.ID, got.ID))
	}
	if want.Found != nil && got.Found != *want.Found {
		msgs = append(msgs, fmt.Sprintf("expected found=%t, got found=%t", *want.Found, got.Found))
	}
	if want.Value != nil && got.Result != *want.Value {
		msgs = append(msgs, fmt.Sprintf("expected value %q, got %q", *want.Value, got.Result))
	}
	if want.Forward != nil && got.Forward != *want.Forward {
		msgs = append(msgs, fmt.Sprintf("expected forward %q, got %q", *want.Forward, got.Forward))
	}
	if want.Backward != nil && got.Backward != *want.Backward {
		msgs = append(msgs, fmt.Sprintf("expected backward %q, got %q", *want.Backward, got.Backward))
	}
	return msgs
}

func describeError(code string) string {
	if code == "" {
		return "none"
	}
	return code
}

// evaluateAssertions runs all assertions and returns failure messages.
func (h *Harness) evaluateAssertions(assertions []Assertion) []string {
	var msgs []string
	for i, a := range assertions {
		if err := h.evaluateAssertion(a); err != nil {
			msgs = append(msgs, fmt.Sprintf("assertions[%d] (%s): %v", i, a.Type, err))
		}
	}
	return msgs
}

func (h *Harness) evaluateAssertion(a Assertion) error {
	switch a.Type {
	case AssertSameID:
		first, err := h.symbol(a.Symbols[0])
		if err != nil {
			return err
		}
		for _, name := range a.Symbols[1:] {
			sym, err := h.symbol(name)
			if err != nil {
				return err
			}
			if sym.id() != first.id() {
				return fmt.Errorf("%s has id %d, %s has id %d", a.Symbols[0], first.id(), name, sym.id())
			}
		}

	case AssertDistinctID:
		seen := make(map[uint64]string, len(a.Symbols))
		for _, name := range a.Symbols {
			sym, err := h.symbol(name)
			if err != nil {
				return err
			}
			id := uint64(sym.id())
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("%s and %s share id %d", prev, name, id)
			}
			seen[id] = name
		}

	case AssertCellCount:
		if got := h.tables[a.Table].Len(); got != a.Count {
			return fmt.Errorf("table %s has %d cells, expected %d", a.Table, got, a.Count)
		}

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
