// Package diag implements the error/diagnostic surface described in §7:
// fatal kinds returned as Go errors, non-fatal kinds accumulated into a
// Diagnostics value passed to Locate. Grounded on
// internal/core/errorfmt.go's CLIError/Wrap — a single uniform payload type
// with a machine-readable Kind and a human Message — generalized to carry
// a source Location and split into fatal-vs-accumulated halves per §7.
package diag

import (
	"fmt"

	"github.com/MyroslavaStopets/swig/internal/ast"
)

// Kind identifies a diagnostic, fatal or not.
type Kind string

const (
	KindTemplateNotFound       Kind = "TemplateNotFound"
	KindNotATemplate           Kind = "NotATemplate"
	KindArityMismatch          Kind = "ArityMismatch"
	KindDuplicateInstantiation Kind = "DuplicateInstantiation"
	KindAmbiguousPartial       Kind = "AmbiguousPartial"
)

// Location captures where a diagnostic applies, taken from a node or the
// calling parser. Both fields are optional; the zero value means "unknown".
type Location struct {
	File string
	Line int
}

// Error is a fatal diagnostic, returned as a Go error by Locate.
type Error struct {
	Kind     Kind
	Message  string
	Location Location
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, diag.NewError(diag.KindX, diag.Location{}, "")) matches
// any error of kind KindX. A bare Kind is not an error and cannot be a target.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// NewError builds a fatal diagnostic of the given kind.
func NewError(kind Kind, loc Location, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Location: loc}
}

// TemplateNotFound reports a template name missing from the scope chain.
func TemplateNotFound(loc Location, name string) *Error {
	return NewError(KindTemplateNotFound, loc, "Template '%s' undefined.", name)
}

// NotATemplate reports that a resolved name is not a template node.
func NotATemplate(loc Location, name string) *Error {
	return NewError(KindNotATemplate, loc, "'%s' is not a template.", name)
}

// ArityMismatch reports an instantiation argument count outside the
// primary's [required, total] range.
func ArityMismatch(loc Location, name string, got, required, total int) *Error {
	return NewError(KindArityMismatch, loc,
		"Template '%s' expects between %d and %d arguments, %d given.",
		name, required, total, got)
}

// Diagnostic is a single non-fatal warning accumulated during evaluation.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Location Location
}

// Diagnostics accumulates non-fatal diagnostics across Locate calls. The
// zero value is ready to use.
type Diagnostics struct {
	Items []Diagnostic
}

// Add appends a diagnostic.
func (d *Diagnostics) Add(kind Kind, loc Location, format string, args ...any) {
	d.Items = append(d.Items, Diagnostic{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

// DuplicateInstantiation records a rejected duplicate instantiation
// request at loc, the site of the repeated request. The site of the
// original instantiation is not recorded.
func (d *Diagnostics) DuplicateInstantiation(loc Location, name string) {
	d.Add(KindDuplicateInstantiation, loc,
		"'%s' was already instantiated; ignoring duplicate request.", name)
}

// AmbiguousPartial records an ambiguity between multiple tied partial
// specializations, naming the chosen candidate and every ignored one.
func (d *Diagnostics) AmbiguousPartial(loc Location, chosen string, ignored []string) {
	d.Add(KindAmbiguousPartial, loc,
		"partial specialization is ambiguous: chose '%s', ignored %v.", chosen, ignored)
}

// Skip reports whether node must be skipped silently during traversal
// because it already carries an error (§7 NodeInError).
func Skip(node *ast.Node) bool {
	return node != nil && node.Error
}
