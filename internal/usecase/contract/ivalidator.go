package usecasecontract

// IValidator validates user supplied values that carry rules beyond
// struct binding tags.
type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
}
