package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted run against one or more symbol tables.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Tables lists table names. Tables are built in this order.
	Tables []string `yaml:"tables"`

	// Domains declares the domains steps may reference.
	Domains []DomainDef `yaml:"domains"`

	// Normalize optionally names a Unicode normalization form applied by
	// every table: nfc, nfd, nfkc or nfkd.
	Normalize string `yaml:"normalize,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions are evaluated after all steps have run.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// DomainDef declares a named domain.
type DomainDef struct {
	Name string `yaml:"name"`

	// Kind selects the value type: "string" or "int".
	Kind string `yaml:"kind"`
}

// Step is a single operation.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// Table names the table to operate on (all ops except chars).
	Table string `yaml:"table,omitempty"`

	// Domain names the domain (intern, lookup, has).
	Domain string `yaml:"domain,omitempty"`

	// Value is the value in its string form (intern, lookup, has).
	Value string `yaml:"value,omitempty"`

	// Symbol references a previously bound symbol (resolve, chars).
	Symbol string `yaml:"symbol,omitempty"`

	// Bind names the resulting symbol for later steps (intern, lookup).
	Bind string `yaml:"bind,omitempty"`

	// Expect optionally checks the step outcome.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies expected step outcomes. Only set fields are checked.
type Expect struct {
	ID       *uint64 `yaml:"id,omitempty"`
	Found    *bool   `yaml:"found,omitempty"`
	Value    *string `yaml:"value,omitempty"`
	Error    string  `yaml:"error,omitempty"`
	Forward  *string `yaml:"forward,omitempty"`
	Backward *string `yaml:"backward,omitempty"`
}

// Assertion validates state after all steps have run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Symbols lists bound symbol names (same_id, distinct_id).
	Symbols []string `yaml:"symbols,omitempty"`

	// Table names the table (cell_count).
	Table string `yaml:"table,omitempty"`

	// Count is the expected number of cells, sentinel included (cell_count).
	Count int `yaml:"count,omitempty"`
}

// Step operations.
const (
	OpIntern  = "intern"
	OpLookup  = "lookup"
	OpHas     = "has"
	OpResolve = "resolve"
	OpChars   = "chars"
)

// Domain kinds.
const (
	KindString = "string"
	KindInt    = "int"
)

// Assertion types.
const (
	AssertSameID     = "same_id"
	AssertDistinctID = "distinct_id"
	AssertCellCount  = "cell_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "step:" vs "steps:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and references
// point at declared tables and domains.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Tables) == 0 {
		return fmt.Errorf("tables list is required and must be non-empty")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if _, err := normalizationOption(s.Normalize); err != nil {
		return err
	}

	tables := make(map[string]bool, len(s.Tables))
	for i, name := range s.Tables {
		if name == "" {
			return fmt.Errorf("tables[%d]: name is required", i)
		}
		if tables[name] {
			return fmt.Errorf("tables[%d]: duplicate table %q", i, name)
		}
		tables[name] = true
	}

	domains := make(map[string]bool, len(s.Domains))
	for i, d := range s.Domains {
		if d.Name == "" {
			return fmt.Errorf("domains[%d]: name is required", i)
		}
		if d.Kind != KindString && d.Kind != KindInt {
			return fmt.Errorf("domains[%d]: kind must be %q or %q, got %q", i, KindString, KindInt, d.Kind)
		}
		if domains[d.Name] {
			return fmt.Errorf("domains[%d]: duplicate domain %q", i, d.Name)
		}
		domains[d.Name] = true
	}

	for i, step := range s.Steps {
		if err := validateStep(step, tables, domains); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a, tables); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

func validateStep(step Step, tables, domains map[string]bool) error {
	switch step.Op {
	case OpIntern, OpLookup, OpHas:
		if !tables[step.Table] {
			return fmt.Errorf("unknown table %q", step.Table)
		}
		if !domains[step.Domain] {
			return fmt.Errorf("unknown domain %q", step.Domain)
		}
		if step.Op == OpHas && step.Bind != "" {
			return fmt.Errorf("bind is not allowed for %s", step.Op)
		}
	case OpResolve:
		if !tables[step.Table] {
			return fmt.Errorf("unknown table %q", step.Table)
		}
		if step.Symbol == "" {
			return fmt.Errorf("symbol is required for %s", step.Op)
		}
	case OpChars:
		if step.Symbol == "" {
			return fmt.Errorf("symbol is required for %s", step.Op)
		}
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func validateAssertion(a Assertion, tables map[string]bool) error {
	switch a.Type {
	case AssertSameID, AssertDistinctID:
		if len(a.Symbols) < 2 {
			return fmt.Errorf("%s needs at least two symbols", a.Type)
		}
	case AssertCellCount:
		if !tables[a.Table] {
			return fmt.Errorf("unknown table %q", a.Table)
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
