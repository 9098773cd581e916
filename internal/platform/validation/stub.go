package validation

var _ Validator = (*StubValidator)(nil)

// StubValidator returns whatever field errors ValidateStructFunc reports.
type StubValidator struct {
	ValidateStructFunc func(any) map[string]string
}

func (s *StubValidator) ValidateStruct(st any) map[string]string {
	if s.ValidateStructFunc == nil {
		panic("ValidateStruct not implemented by stub")
	}
	return s.ValidateStructFunc(st)
}
