// Package validator checks request structs and single values against
// go-playground/validator tags.
//
// Besides the stock rules it registers the destination formats used by the
// sign-in flow: "cnphone" for mainland mobile numbers and "otpemail" for the
// addresses a code can be mailed to. Failures come back as a map keyed by
// snake_case field name so they can be returned to clients as-is.
package validator
