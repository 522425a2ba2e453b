package core

// FieldError describes why one request field was rejected. Field is the json name.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is a business rule violation reported to the client as a 400.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

// NewFieldValidationError reports err against a single field, using err's text for both.
func NewFieldValidationError(field string, err error) error {
	return NewValidationError(err, FieldError{Field: field, Error: err.Error()})
}

func (ve *ValidationError) Error() string {
	if ve.Err == nil {
		return ""
	}
	return ve.Err.Error()
}

func (ve *ValidationError) Unwrap() error {
	return ve.Err
}
