package validation

// Validator defines the interface that needs to be implemented by all validation strategies.
// ValidateStruct returns field errors keyed by json field name, or nil when s is valid.
type Validator interface {
	ValidateStruct(s any) map[string]string
}
