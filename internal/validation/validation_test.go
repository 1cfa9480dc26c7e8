package validation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegedir/cli/internal/models"
)

func validForm() models.RegistrationForm {
	return models.RegistrationForm{
		Name:       "Ann Lee",
		Username:   "annlee",
		Email:      "ann@college.edu",
		Phone:      "9876543210",
		Password:   "secret123",
		Confirm:    "secret123",
		Department: "Computer Science",
		Year:       "2nd Year",
		Role:       models.RoleStudent,
	}
}

func TestValidateAcceptsValidForm(t *testing.T) {
	v := New(Options{})
	assert.Empty(t, v.Validate(validForm()))
}

func TestValidateReportsEveryField(t *testing.T) {
	v := New(Options{})
	errs := v.Validate(models.RegistrationForm{
		Name:     "  ab ",
		Username: "x",
		Email:    "not-an-email",
		Phone:    "12345",
		Password: "short",
		Confirm:  "other",
		Role:     models.RoleStudent,
	})

	assert.Equal(t, Errors{
		"name":       "Name must be at least 3 characters",
		"username":   "Username must be at least 3 characters",
		"email":      "Invalid email format",
		"phone":      "Phone must be exactly 10 digits",
		"password":   "Password must be at least 8 characters",
		"confirm":    "Passwords do not match",
		"department": "Select department",
		"year":       "Select year",
	}, errs)
}

func TestValidateConfirmMismatchAlwaysReported(t *testing.T) {
	v := New(Options{})
	form := validForm()
	form.Password = "abc"
	form.Confirm = "xyz"

	errs := v.Validate(form)
	assert.Equal(t, "Passwords do not match", errs["confirm"])
}

func TestValidateIsDeterministic(t *testing.T) {
	v := New(Options{})
	form := validForm()
	form.Phone = "12"
	form.Email = "nope"

	first := v.Validate(form)
	second := v.Validate(form)
	assert.Equal(t, first, second)
	assert.Equal(t, validForm().Name, form.Name)
}

func TestValidateYearOnlyForStudents(t *testing.T) {
	v := New(Options{})
	form := validForm()
	form.Year = ""

	assert.Contains(t, v.Validate(form), "year")

	form.Role = models.RoleFacultyMember
	assert.NotContains(t, v.Validate(form), "year")

	form.Role = "student"
	assert.Contains(t, v.Validate(form), "year")
}

func TestValidateStrictPolicy(t *testing.T) {
	v := New(Options{Policy: PolicyStrict})
	form := validForm()

	errs := v.Validate(form)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")

	form.Username = "annlee2024"
	form.Password = "Secret#123"
	form.Confirm = "Secret#123"
	assert.Empty(t, v.Validate(form))
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	v := New(Options{})

	form := validForm()
	form.Name = "李明"
	form.Username = "çé"
	form.Password = "éééé"
	form.Confirm = "éééé"
	errs := v.Validate(form)
	assert.Equal(t, "Name must be at least 3 characters", errs["name"])
	assert.Equal(t, "Username must be at least 3 characters", errs["username"])
	assert.Equal(t, "Password must be at least 8 characters", errs["password"])

	form.Name = "李小明"
	form.Username = "çéà"
	form.Password = "éééééééé"
	form.Confirm = "éééééééé"
	assert.Empty(t, v.Validate(form))

	assert.Contains(t, v.ValidateNewPassword("éééé", "éééé"), "password")

	strict := New(Options{Policy: PolicyStrict})
	form = validForm()
	form.Username = "annlee2024"
	form.Password = "Éé1#Éé1"
	form.Confirm = "Éé1#Éé1"
	assert.Contains(t, strict.Validate(form), "password")
}

func TestValidateProfileImageBounds(t *testing.T) {
	v := New(Options{RequireProfileImage: true})

	assert.Equal(t, "Profile picture is required", v.ValidateProfileImage(nil))
	assert.Equal(t, "Image must be at least 30KB",
		v.ValidateProfileImage(&models.ProfileImage{Data: make([]byte, 10*1024)}))
	assert.Equal(t, "Image must not exceed 500KB",
		v.ValidateProfileImage(&models.ProfileImage{Data: make([]byte, 501*1024)}))
	assert.Empty(t, v.ValidateProfileImage(&models.ProfileImage{Data: bytes.Repeat([]byte{1}, 64*1024)}))

	optional := New(Options{})
	assert.Empty(t, optional.ValidateProfileImage(nil))
}

func TestValidateIncludesProfileImage(t *testing.T) {
	v := New(Options{RequireProfileImage: true})
	errs := v.Validate(validForm())
	assert.Equal(t, Errors{"profilePic": "Profile picture is required"}, errs)
}

func TestValidateLogin(t *testing.T) {
	v := New(Options{})
	assert.Empty(t, v.ValidateLogin("a@b.com", "pw"))

	errs := v.ValidateLogin("", "")
	assert.Equal(t, "Email is required", errs["email"])
	assert.Equal(t, "Password is required", errs["password"])

	assert.Equal(t, "Invalid email format", v.ValidateLogin("ab.com", "pw")["email"])
}

func TestValidateNewPassword(t *testing.T) {
	v := New(Options{})
	assert.Empty(t, v.ValidateNewPassword("longenough", "longenough"))

	errs := v.ValidateNewPassword("short", "shorter")
	assert.Len(t, errs, 2)
}

func TestErrorsErr(t *testing.T) {
	assert.NoError(t, Errors{}.Err())

	err := Errors{"phone": "Phone must be exactly 10 digits"}.Err()
	require.Error(t, err)
	assert.Equal(t, "phone: Phone must be exactly 10 digits", err.Error())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("STRICT")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyBasic, p)

	_, err = ParsePolicy("paranoid")
	assert.Error(t, err)
}
