package harness

import (
	"fmt"
	"strings"
)

// TraceEvent records the outcome of one step.
type TraceEvent struct {
	Seq    int    `json:"seq"`
	Op     string `json:"op"`
	Table  string `json:"table,omitempty"`
	Domain string `json:"domain,omitempty"`
	Value  string `json:"value,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	Bind   string `json:"bind,omitempty"`

	// ID is the symbol id produced or resolved, if any.
	ID uint64 `json:"id,omitempty"`

	// Found reports lookup and has outcomes.
	Found bool `json:"found,omitempty"`

	// Result is the resolved value (resolve) or the iterator display (chars).
	Result string `json:"result,omitempty"`

	// Error is the resolution error code, if the step produced one.
	Error string `json:"error,omitempty"`

	// Forward and Backward are the characters seen by chars.
	Forward  string `json:"forward,omitempty"`
	Backward string `json:"backward,omitempty"`
}

// Line renders the event as a single line of trace text.
//
//	1 intern a/word "hello" -> #1 as h1
//	2 resolve b h1 -> error TABLE_MISMATCH
func (e TraceEvent) Line() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s ", e.Seq, e.Op)

	switch e.Op {
	case OpIntern:
		fmt.Fprintf(&b, "%s/%s %q -> #%d", e.Table, e.Domain, e.Value, e.ID)
	case OpLookup:
		fmt.Fprintf(&b, "%s/%s %q -> ", e.Table, e.Domain, e.Value)
		if e.Found {
			fmt.Fprintf(&b, "#%d", e.ID)
		} else {
			b.WriteString("none")
		}
	case OpHas:
		fmt.Fprintf(&b, "%s/%s %q -> %t", e.Table, e.Domain, e.Value, e.Found)
	case OpResolve:
		fmt.Fprintf(&b, "%s %s -> ", e.Table, e.Symbol)
		if e.Error != "" {
			fmt.Fprintf(&b, "error %s", e.Error)
		} else {
			fmt.Fprintf(&b, "%q", e.Result)
		}
	case OpChars:
		fmt.Fprintf(&b, "%s -> ", e.Symbol)
		if e.Error != "" {
			fmt.Fprintf(&b, "error %s", e.Error)
		} else {
			fmt.Fprintf(&b, "%s forward=%q backward=%q", e.Result, e.Forward, e.Backward)
		}
	}

	if e.Bind != "" && (e.Op == OpIntern || e.Found) {
		fmt.Fprintf(&b, " as %s", e.Bind)
	}
	return b.String()
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(e TraceEvent) {
	r.Trace = append(r.Trace, e)
}
