package symtab

import (
	"errors"
	"fmt"

	"github.com/roach88/symtab/internal/interner"
)

// ErrUnknownFlavor is returned by New for a Flavor outside the supported set.
var ErrUnknownFlavor = errors.New("unknown interner flavor")

// ErrZeroDomain is the panic value of Intern through a zero Domain, and the
// error wrapped when resolving through one.
var ErrZeroDomain = errors.New("zero Domain has no codec")

// ResolutionError is returned when a symbol cannot be turned back into a value.
//
// Resolution errors include:
//   - Table mismatch: symbol resolved against a table that did not mint it
//   - Parse failure: the stored string does not decode into the domain type
//   - Invalid ID: the store has no cell for the symbol's ID
type ResolutionError struct {
	// Code identifies the error category.
	Code ResolutionErrorCode

	// Message is a human-readable description.
	Message string

	// Domain is the name of the symbol's domain.
	Domain string

	// ID is the symbol's raw identifier.
	ID interner.ID

	// TableOrigin is the identity of the table asked to resolve (mismatch only).
	TableOrigin Identity

	// SymbolOrigin is the identity of the table that minted the symbol (mismatch only).
	SymbolOrigin Identity

	// Value is the stored string that failed to decode (parse only).
	Value string

	// Err is the underlying codec or store error, if any.
	Err error
}

// ResolutionErrorCode categorizes resolution errors.
type ResolutionErrorCode string

const (
	// ErrCodeTableMismatch indicates the symbol came from a different table.
	ErrCodeTableMismatch ResolutionErrorCode = "TABLE_MISMATCH"

	// ErrCodeParse indicates the stored string did not decode.
	ErrCodeParse ResolutionErrorCode = "PARSE_FAILED"

	// ErrCodeInvalidID indicates the store never issued the symbol's ID.
	ErrCodeInvalidID ResolutionErrorCode = "INVALID_ID"
)

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	switch e.Code {
	case ErrCodeTableMismatch:
		return fmt.Sprintf("%s: %s (symbol=%s, table=%s)", e.Code, e.Message, e.SymbolOrigin, e.TableOrigin)
	case ErrCodeParse:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s (domain=%s, value=%q): %v", e.Code, e.Message, e.Domain, e.Value, e.Err)
		}
		return fmt.Sprintf("%s: %s (domain=%s, value=%q)", e.Code, e.Message, e.Domain, e.Value)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (domain=%s, id=%d): %v", e.Code, e.Message, e.Domain, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: %s (domain=%s, id=%d)", e.Code, e.Message, e.Domain, e.ID)
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsMismatchError returns true if err is a table mismatch error.
// Uses errors.As to handle wrapped errors.
func IsMismatchError(err error) bool {
	return hasCode(err, ErrCodeTableMismatch)
}

// IsParseError returns true if err is a parse failure.
func IsParseError(err error) bool {
	return hasCode(err, ErrCodeParse)
}

// IsInvalidIDError returns true if err is an invalid ID error.
func IsInvalidIDError(err error) bool {
	return hasCode(err, ErrCodeInvalidID)
}

// CodeOf returns the resolution error code of err, or "" if err is not a
// *ResolutionError.
func CodeOf(err error) ResolutionErrorCode {
	var re *ResolutionError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

func hasCode(err error, code ResolutionErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// NewMismatchError creates a ResolutionError for a provenance mismatch.
func NewMismatchError(table, symbol Identity, domain string, id interner.ID) *ResolutionError {
	return &ResolutionError{
		Code:         ErrCodeTableMismatch,
		Message:      "symbol did not originate from this table",
		Domain:       domain,
		ID:           id,
		TableOrigin:  table,
		SymbolOrigin: symbol,
	}
}

// NewParseError creates a ResolutionError for a value that failed to decode.
func NewParseError(domain string, id interner.ID, value string, err error) *ResolutionError {
	return &ResolutionError{
		Code:    ErrCodeParse,
		Message: "interned value could not be decoded",
		Domain:  domain,
		ID:      id,
		Value:   value,
		Err:     err,
	}
}

// NewInvalidIDError creates a ResolutionError for an ID the store rejected.
func NewInvalidIDError(domain string, id interner.ID, err error) *ResolutionError {
	return &ResolutionError{
		Code:    ErrCodeInvalidID,
		Message: "symbol id not found in store",
		Domain:  domain,
		ID:      id,
		Err:     err,
	}
}
