package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate holds the shared validator instance with the custom field rules
// used by the value-type constructors below.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	regex := func(tag, pattern string) {
		re := regexp.MustCompile(pattern)
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}
	regex("contactname", `^[A-Za-z0-9][A-Za-z0-9 ]*$`)
	regex("phonedigits", `^[0-9]{3,}$`)
	regex("postalcode", `^[0-9]{6}$`)
	regex("interestrate", `^[0-9]{1,3}$`)
	regex("tagname", `^[A-Za-z0-9]+$`)
	regex("debtamount", `^[0-9]+(\.[0-9]{1,2})?$`)
	return v
}

// DeadlineLayout is the display and input format for repayment deadlines.
const DeadlineLayout = "02-01-2006"

// Name is a contact's display name. Alphanumeric words separated by single
// spaces, first character alphanumeric.
type Name string

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,contactname"); err != nil {
		return "", invalid("name", "names should only contain alphanumeric characters and spaces, and should not be blank")
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

// Phone is a contact's phone number, digits only, at least 3 long.
type Phone string

func NewPhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,phonedigits"); err != nil {
		return "", invalid("phone", "phone numbers can only contain numbers, and should be at least 3 digits long")
	}
	return Phone(s), nil
}

func (p Phone) String() string { return string(p) }

// Email is a contact's email address.
type Email string

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,email"); err != nil {
		return "", invalid("email", "emails should be of the format local-part@domain")
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }

// Address is a contact's street address. Any non-blank value is accepted.
type Address string

func NewAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required"); err != nil {
		return "", invalid("address", "addresses can take any value, but should not be blank")
	}
	return Address(s), nil
}

func (a Address) String() string { return string(a) }

// PostalCode is a 6-digit postal code.
type PostalCode string

func NewPostalCode(s string) (PostalCode, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,postalcode"); err != nil {
		return "", invalid("postal code", "postal codes must be exactly 6 digits")
	}
	return PostalCode(s), nil
}

func (p PostalCode) String() string { return string(p) }

// Interest is an annual interest rate in whole percent. Empty means no
// interest was agreed.
type Interest string

func NewInterest(s string) (Interest, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if err := validate.Var(s, "interestrate"); err != nil {
		return "", invalid("interest", "interest must be a whole number of percent")
	}
	return Interest(s), nil
}

func (i Interest) IsSet() bool { return i != "" }

func (i Interest) String() string {
	if i == "" {
		return "-"
	}
	return string(i) + "%"
}

// Deadline is an optional repayment deadline in DD-MM-YYYY form. The zero
// value means no deadline was set.
type Deadline string

func NewDeadline(s string) (Deadline, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(DeadlineLayout, s)
	if err != nil {
		return "", invalid("deadline", "deadlines must be valid dates in DD-MM-YYYY format")
	}
	return Deadline(t.Format(DeadlineLayout)), nil
}

func (d Deadline) IsSet() bool { return d != "" }

// Time returns the deadline as a time.Time. Only valid when IsSet.
func (d Deadline) Time() time.Time {
	t, _ := time.Parse(DeadlineLayout, string(d))
	return t
}

func (d Deadline) String() string {
	if d == "" {
		return "-"
	}
	return string(d)
}
