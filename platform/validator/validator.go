// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// geoTagPattern matches the literal geo identifiers issued by the listing API.
var geoTagPattern = regexp.MustCompile(`^geo-(canton|region|zipcode|city|country)-[A-Za-z0-9-]+$`)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the domain rules registered.
func New() *Validator {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("geotag", func(fl validator.FieldLevel) bool {
		return IsGeoTag(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// IsGeoTag reports whether s already has the shape of a geo tag
// (geo-canton-*, geo-region-*, geo-zipcode-*, geo-city-*, geo-country-*).
func IsGeoTag(s string) bool {
	return geoTagPattern.MatchString(s)
}
