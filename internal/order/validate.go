package order

import "regexp"

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FieldErrors maps a field name to its validation message. Empty means valid.
type FieldErrors map[string]string

func (e FieldErrors) Valid() bool { return len(e) == 0 }

// ValidateCustomer checks the customer step's fields. Both phone and email
// are optional; a present value has to match its format.
func ValidateCustomer(c Customer) FieldErrors {
	errs := FieldErrors{}
	if c.Phone != "" && !phonePattern.MatchString(c.Phone) {
		errs["phone"] = "Phone must be a 10-digit number"
	}
	if c.Email != "" && !emailPattern.MatchString(c.Email) {
		errs["email"] = "Invalid email format"
	}
	return errs
}
