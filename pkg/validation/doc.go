// Package validation implements the two validation paths of a form.
//
// Field applies a field's own rules to its current value and yields advisory
// messages shown while the user edits. Submission filters the values to the
// visible fields and runs the schema's aggregate validator, which alone
// decides whether a submission is accepted.
package validation
