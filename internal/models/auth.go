package models

// LoginRequest is the body posted to a role's login endpoint
type LoginRequest struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
}

// ProfileImage is an optional picture attached to a registration
type ProfileImage struct {
	Filename string
	Data     []byte
}

// Size returns the image size in bytes
func (p *ProfileImage) Size() int64 {
	if p == nil {
		return 0
	}
	return int64(len(p.Data))
}

// RegistrationForm holds everything a user enters on the registration page
type RegistrationForm struct {
	Name         string
	Username     string
	Email        string
	Phone        string
	Password     string
	Confirm      string
	Department   string
	Year         string
	Role         Role
	ProfileImage *ProfileImage
}

// Fields returns the wire fields sent to the register endpoint.
// Confirm never leaves the client.
func (f RegistrationForm) Fields() map[string]string {
	return map[string]string{
		"name":     f.Name,
		"username": f.Username,
		"email":    f.Email,
		"phone":    f.Phone,
		"password": f.Password,
		"dept":     f.Department,
		"year":     f.Year,
		"role":     string(f.Role),
	}
}

// PasswordReset is the final step of the forgot-password flow
type PasswordReset struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// OTPRequest asks the server to mail a code, or checks one when OTP is set
type OTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp,omitempty"`
}
