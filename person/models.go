// Package person defines registered people and the registration input rules.
package person

import (
	"strings"

	"github.com/xraph/relief/id"
	"github.com/xraph/relief/types"
)

// Person is a registered individual. The name is the uniqueness key across
// the whole system; two people cannot register under the same name.
type Person struct {
	types.Entity
	ID       id.PersonID `json:"id"`
	Name     string      `json:"name"`
	Age      int         `json:"age"`
	Location string      `json:"location"`
	Phone    string      `json:"phone"`
	Email    string      `json:"email"`
	// Password is stored in clear text.
	// TODO: hash passwords at rest before any multi-user deployment.
	Password string `json:"-"`
}

// Registration is the input for registering a new person.
type Registration struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace from the identity fields.
// Passwords are taken verbatim.
func (r *Registration) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
}

// Field names reported by Validate.
const (
	FieldName     = "name"
	FieldAge      = "age"
	FieldLocation = "location"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Invalid describes a single rejected registration field.
type Invalid struct {
	Field   string
	Message string
}

// Validate checks the registration input and returns the first rule it
// violates, or nil if the input is acceptable. All fields are required,
// age must be positive, the phone number must be exactly ten digits, and
// the email must look like local@domain.tld.
func (r Registration) Validate() *Invalid {
	switch {
	case r.Name == "":
		return &Invalid{Field: FieldName, Message: "name is required"}
	case r.Age <= 0:
		return &Invalid{Field: FieldAge, Message: "age must be a positive number"}
	case r.Location == "":
		return &Invalid{Field: FieldLocation, Message: "location is required"}
	case !ValidPhone(r.Phone):
		return &Invalid{Field: FieldPhone, Message: "phone number must be exactly 10 digits"}
	case !ValidEmail(r.Email):
		return &Invalid{Field: FieldEmail, Message: "invalid email address"}
	case r.Password == "":
		return &Invalid{Field: FieldPassword, Message: "password is required"}
	}
	return nil
}

// ValidPhone reports whether s is exactly ten ASCII digits.
func ValidPhone(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidEmail reports whether s has the shape local@domain.tld: a non-empty
// local part, exactly one '@', and at least one '.' somewhere after it.
func ValidEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	if strings.IndexByte(s[at+1:], '@') != -1 {
		return false
	}
	dot := strings.IndexByte(s[at+1:], '.')
	// The dot may not start or end the domain.
	return dot > 0 && at+1+dot != len(s)-1
}
