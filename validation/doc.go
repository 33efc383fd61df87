// Package validation provides input validation utilities for the engine.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// used for configuration; programmatic validation for ad-hoc checks.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    Workers int `validate:"gte=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name)
//	err := v.Validate()
package validation
