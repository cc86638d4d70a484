// Package form tracks the lifecycle of a create/edit form: field values,
// validation errors, and the submit round-trip. It is UI-agnostic; the
// terminal layer renders its state and feeds it input.
package form

import (
	"errors"

	"github.com/mkvist/hatchctl/internal/validate"
)

// State is the submission phase of a form.
type State int

const (
	// StateIdle means the form is open and editable.
	StateIdle State = iota
	// StateInvalid means the last submit attempt failed client-side checks.
	StateInvalid
	// StateSubmitting means a request is in flight; input is locked.
	StateSubmitting
	// StateSucceeded means the last submit completed and the form can close.
	StateSucceeded
	// StateFailed means the server rejected the last submit; the form stays
	// open with its values intact.
	StateFailed
)

var (
	// ErrSubmitInFlight is returned by Submit while a request is pending.
	ErrSubmitInFlight = errors.New("submit already in flight")
	// ErrInvalid is returned by Submit when client-side validation fails.
	ErrInvalid = errors.New("form has invalid fields")
)

// Validator checks a form's field values.
type Validator func(map[string]string) validate.Result

// Controller owns one form's state. It is not safe for concurrent use;
// the terminal event loop serializes access.
type Controller struct {
	mode        Mode
	state       State
	fields      map[string]string
	fieldErrors map[string]string
	formError   string
	validator   Validator
}

// NewController opens a form in the given mode.
func NewController(mode Mode, validator Validator) *Controller {
	return &Controller{
		mode:        mode,
		state:       StateIdle,
		fields:      make(map[string]string),
		fieldErrors: make(map[string]string),
		validator:   validator,
	}
}

func (c *Controller) Mode() Mode   { return c.mode }
func (c *Controller) State() State { return c.state }

// Seed loads initial field values (record being edited, or a saved draft)
// without touching errors or state.
func (c *Controller) Seed(values map[string]string) {
	for k, v := range values {
		c.fields[k] = v
	}
}

// SetField records an edited value and clears that field's error. Other
// field errors and the form-level error stay until the next submit.
func (c *Controller) SetField(name, value string) {
	if c.state == StateSubmitting {
		return
	}
	c.fields[name] = value
	delete(c.fieldErrors, name)
}

// Field returns the current value of one field.
func (c *Controller) Field(name string) string { return c.fields[name] }

// Fields returns a copy of all field values.
func (c *Controller) Fields() map[string]string {
	out := make(map[string]string, len(c.fields))
	for k, v := range c.fields {
		out[k] = v
	}
	return out
}

// FieldError returns the validation message for one field, or "".
func (c *Controller) FieldError(name string) string { return c.fieldErrors[name] }

// FieldErrors returns all current field errors.
func (c *Controller) FieldErrors() map[string]string { return c.fieldErrors }

// FormError returns the form-level error from the last failed submit, or "".
func (c *Controller) FormError() string { return c.formError }

// Submit validates the form and, if clean, moves it to StateSubmitting.
// The caller then performs the request and reports back via Resolve.
// Returns ErrSubmitInFlight if a request is already pending, ErrInvalid
// if validation failed.
func (c *Controller) Submit() error {
	if c.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	c.formError = ""
	res := c.validator(c.Fields())
	if !res.Valid {
		c.state = StateInvalid
		c.fieldErrors = res.Errors
		return ErrInvalid
	}
	c.state = StateSubmitting
	c.fieldErrors = make(map[string]string)
	return nil
}

// Resolve reports the outcome of the in-flight request. On success the
// form is done; on failure it stays open and editable with the server's
// message as the form-level error.
func (c *Controller) Resolve(err error) {
	if c.state != StateSubmitting {
		return
	}
	if err != nil {
		c.state = StateFailed
		c.formError = err.Error()
		return
	}
	c.state = StateSucceeded
}

// Editable reports whether the form currently accepts input.
func (c *Controller) Editable() bool {
	return c.state == StateIdle || c.state == StateInvalid || c.state == StateFailed
}
