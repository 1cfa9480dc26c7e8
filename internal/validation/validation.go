// Package validation computes field-level errors for the registration,
// login and password reset forms. Every check is pure: the same input
// always yields the same error map and nothing is touched on the way.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/collegedir/cli/internal/models"
)

// Policy selects how strict username and password rules are
type Policy string

const (
	// PolicyBasic requires usernames of 3+ characters and passwords of 8+
	PolicyBasic Policy = "basic"
	// PolicyStrict requires 8+ alphanumeric usernames and passwords mixing
	// upper and lower case letters, digits and symbols
	PolicyStrict Policy = "strict"
)

// ParsePolicy accepts "basic" or "strict"
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyBasic, "":
		return PolicyBasic, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown validation policy %q", s)
	}
}

// Options configures a Validator
type Options struct {
	Policy              Policy
	RequireProfileImage bool
	ImageMinKB          int64
	ImageMaxKB          int64
}

// Errors maps a form field name to its error message
type Errors map[string]string

// Error implements the error interface so a non-empty map can be returned
func (e Errors) Error() string {
	if len(e) == 1 {
		for field, msg := range e {
			return fmt.Sprintf("%s: %s", field, msg)
		}
	}
	return fmt.Sprintf("%d fields are invalid", len(e))
}

// Err returns nil for an empty map
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var (
	emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)
	tenDigits  = regexp.MustCompile(`^[0-9]{10}$`)
	alnumMin8  = regexp.MustCompile(`^[a-zA-Z0-9]{8,}$`)
)

type registration struct {
	Name       string `form:"name" validate:"trimmed_min=3"`
	Username   string `form:"username" validate:"username"`
	Email      string `form:"email" validate:"email_shape"`
	Phone      string `form:"phone" validate:"phone10"`
	Password   string `form:"password" validate:"password"`
	Confirm    string `form:"confirm" validate:"eqfield=Password"`
	Department string `form:"department" validate:"required"`
	Year       string `form:"year" validate:"required_if=Role STUDENT"`
	Role       string `form:"role"`
}

// Validator checks forms against one policy
type Validator struct {
	opts     Options
	validate *validator.Validate
	messages map[string]string
}

// New creates a Validator
func New(opts Options) *Validator {
	if opts.Policy == "" {
		opts.Policy = PolicyBasic
	}
	if opts.ImageMinKB <= 0 {
		opts.ImageMinKB = 30
	}
	if opts.ImageMaxKB <= 0 {
		opts.ImageMaxKB = 500
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	v.RegisterValidation("trimmed_min", trimmedMin)
	v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return tenDigits.MatchString(fl.Field().String())
	})

	messages := map[string]string{
		"name":       "Name must be at least 3 characters",
		"email":      "Invalid email format",
		"phone":      "Phone must be exactly 10 digits",
		"confirm":    "Passwords do not match",
		"department": "Select department",
		"year":       "Select year",
	}

	if opts.Policy == PolicyStrict {
		v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return alnumMin8.MatchString(fl.Field().String())
		})
		v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return strongPassword(fl.Field().String())
		})
		messages["username"] = "Username must be at least 8 letters or digits"
		messages["password"] = "Password must be at least 8 characters with upper and lower case letters, a digit and a symbol"
	} else {
		v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= 3
		})
		v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return utf8.RuneCountInString(fl.Field().String()) >= 8
		})
		messages["username"] = "Username must be at least 3 characters"
		messages["password"] = "Password must be at least 8 characters"
	}

	return &Validator{opts: opts, validate: v, messages: messages}
}

// Policy returns the password and username policy in force
func (v *Validator) Policy() Policy {
	return v.opts.Policy
}

// Validate checks a registration form. All fields are evaluated; an empty
// result means the form can be submitted.
func (v *Validator) Validate(form models.RegistrationForm) Errors {
	errs := Errors{}

	in := registration{
		Name:       form.Name,
		Username:   form.Username,
		Email:      form.Email,
		Phone:      form.Phone,
		Password:   form.Password,
		Confirm:    form.Confirm,
		Department: form.Department,
		Year:       form.Year,
		Role:       string(canonicalRole(form.Role)),
	}
	v.collect(v.validate.Struct(in), errs)

	if msg := v.ValidateProfileImage(form.ProfileImage); msg != "" {
		errs["profilePic"] = msg
	}
	return errs
}

// ValidateProfileImage returns an empty string when the image is acceptable
func (v *Validator) ValidateProfileImage(img *models.ProfileImage) string {
	if img == nil || img.Size() == 0 {
		if v.opts.RequireProfileImage {
			return "Profile picture is required"
		}
		return ""
	}
	switch {
	case img.Size() < v.opts.ImageMinKB*1024:
		return "Image must be at least " + strconv.FormatInt(v.opts.ImageMinKB, 10) + "KB"
	case img.Size() > v.opts.ImageMaxKB*1024:
		return "Image must not exceed " + strconv.FormatInt(v.opts.ImageMaxKB, 10) + "KB"
	}
	return ""
}

// ValidateLogin checks the login page's two fields
func (v *Validator) ValidateLogin(email, password string) Errors {
	errs := Errors{}
	if strings.TrimSpace(email) == "" {
		errs["email"] = "Email is required"
	} else if v.validate.Var(email, "email_shape") != nil {
		errs["email"] = v.messages["email"]
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// ValidateNewPassword checks the last step of a password reset
func (v *Validator) ValidateNewPassword(password, confirm string) Errors {
	errs := Errors{}
	if v.validate.Var(password, "password") != nil {
		errs["password"] = v.messages["password"]
	}
	if password != confirm {
		errs["confirm"] = v.messages["confirm"]
	}
	return errs
}

// ValidateEmail checks the shape of a single address
func (v *Validator) ValidateEmail(email string) string {
	if v.validate.Var(email, "email_shape") != nil {
		return v.messages["email"]
	}
	return ""
}

func (v *Validator) collect(err error, errs Errors) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if msg, ok := v.messages[field]; ok {
			errs[field] = msg
		} else {
			errs[field] = fmt.Sprintf("failed %s check", fe.Tag())
		}
	}
}

func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

func strongPassword(s string) bool {
	if utf8.RuneCountInString(s) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

func canonicalRole(r models.Role) models.Role {
	if parsed, err := models.ParseRole(string(r)); err == nil {
		return parsed
	}
	return r
}
