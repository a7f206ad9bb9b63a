package harness

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/symtab/internal/symtab"
)

// Harness holds the live state of one scenario run.
type Harness struct {
	tables  map[string]*symtab.Table
	domains map[string]domainOps
	symbols map[string]boundSymbol
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario gets fresh tables with deterministic identities.
// Execution flow:
//  1. Build tables in declaration order
//  2. Execute steps, checking expect clauses
//  3. Evaluate assertions
//
// Expectation and assertion failures are reported on the Result. A
// returned error means the scenario itself could not be executed, e.g. a
// step referenced a symbol that was never bound.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is like Run but logs table events to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	h, err := newHarness(scenario, logger)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(i, step, result); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	for _, msg := range h.evaluateAssertions(scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func newHarness(scenario *Scenario, logger *slog.Logger) (*Harness, error) {
	opts := []symtab.Option{
		symtab.WithIdentityGenerator(symtab.NewSequenceGenerator("table")),
		symtab.WithLogger(logger),
	}
	normOpt, err := normalizationOption(scenario.Normalize)
	if err != nil {
		return nil, err
	}
	if normOpt != nil {
		opts = append(opts, normOpt)
	}

	h := &Harness{
		tables:  make(map[string]*symtab.Table, len(scenario.Tables)),
		domains: make(map[string]domainOps, len(scenario.Domains)),
		symbols: make(map[string]boundSymbol),
		logger:  logger,
	}
	for _, name := range scenario.Tables {
		t, err := symtab.New(symtab.FlavorArray, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create table %s: %w", name, err)
		}
		h.tables[name] = t
	}
	for _, def := range scenario.Domains {
		ops, err := newDomainOps(def)
		if err != nil {
			return nil, err
		}
		h.domains[def.Name] = ops
	}
	return h, nil
}

// normalizationOption maps a scenario normalize value to a table option.
// Returns nil for "" (no normalization).
func normalizationOption(name string) (symtab.Option, error) {
	switch name {
	case "":
		return nil, nil
	case "nfc":
		return symtab.WithNormalization(norm.NFC), nil
	case "nfd":
		return symtab.WithNormalization(norm.NFD), nil
	case "nfkc":
		return symtab.WithNormalization(norm.NFKC), nil
	case "nfkd":
		return symtab.WithNormalization(norm.NFKD), nil
	default:
		return nil, fmt.Errorf("unknown normalization form %q", name)
	}
}

func (h *Harness) executeStep(i int, step Step, result *Result) error {
	event := TraceEvent{
		Seq:    i + 1,
		Op:     step.Op,
		Table:  step.Table,
		Domain: step.Domain,
		Value:  step.Value,
		Symbol: step.Symbol,
		Bind:   step.Bind,
	}

	switch step.Op {
	case OpIntern:
		sym, err := h.domains[step.Domain].intern(h.tables[step.Table], step.Value)
		if err != nil {
			return err
		}
		event.ID = uint64(sym.id())
		h.bind(step.Bind, sym)

	case OpLookup, OpHas:
		sym, ok, err := h.domains[step.Domain].lookup(h.tables[step.Table], step.Value)
		if err != nil {
			return err
		}
		event.Found = ok
		if ok {
			event.ID = uint64(sym.id())
			h.bind(step.Bind, sym)
		}

	case OpResolve:
		sym, err := h.symbol(step.Symbol)
		if err != nil {
			return err
		}
		event.ID = uint64(sym.id())
		value, err := sym.resolveOn(h.tables[step.Table])
		if err != nil {
			event.Error = string(symtab.CodeOf(err))
			if event.Error == "" {
				return err
			}
		} else {
			event.Result = value
		}

	case OpChars:
		sym, err := h.symbol(step.Symbol)
		if err != nil {
			return err
		}
		event.ID = uint64(sym.id())
		display, fwd, back, err := sym.chars()
		if err != nil {
			event.Error = string(symtab.CodeOf(err))
			if event.Error == "" {
				return err
			}
		} else {
			event.Result, event.Forward, event.Backward = display, fwd, back
		}

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}

	h.logger.Debug("step executed", "seq", event.Seq, "op", event.Op, "line", event.Line())
	result.AddTrace(event)

	if step.Expect != nil {
		for _, msg := range checkExpect(*step.Expect, event) {
			result.AddError(fmt.Sprintf("steps[%d] (%s): %s", i, step.Op, msg))
		}
	}
	return nil
}

func (h *Harness) bind(name string, sym boundSymbol) {
	if name != "" {
		h.symbols[name] = sym
	}
}

func (h *Harness) symbol(name string) (boundSymbol, error) {
	sym, ok := h.symbols[name]
	if !ok {
		return nil, fmt.Errorf("symbol %q is not bound", name)
	}
	return sym, nil
}
