package validator

// Validator validates structs and single values against tag rules.
type Validator interface {
	// Validate checks every `validate` tag of a struct.
	Validate(data any) error
	// Var checks a single value against a tag expression, e.g. "required,cnphone".
	Var(field any, tag string) error
}
