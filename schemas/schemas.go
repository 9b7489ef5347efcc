// Package schemas ships the built-in form definitions: an employee
// registration form and a customer feedback survey.
package schemas

import (
	"github.com/goliatone/go-formflow/pkg/registry"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Built-in schema keys.
const (
	EmployeeKey = "employee"
	SurveyKey   = "survey"
)

// All returns fresh copies of every built-in schema in display order.
func All() []*schema.Schema {
	return []*schema.Schema{Employee(), Survey()}
}

// Register adds every built-in schema to reg.
func Register(reg *registry.Registry) error {
	for _, s := range All() {
		if err := reg.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// Default returns a sealed registry holding the built-in schemas.
func Default() *registry.Registry {
	reg := registry.New()
	if err := Register(reg); err != nil {
		panic(err)
	}
	reg.Seal()
	return reg
}
