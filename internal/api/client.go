package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/collegedir/cli/internal/models"
	"github.com/collegedir/cli/internal/session"
)

// rolePaths is the only place a role is turned into a URL segment
var rolePaths = map[models.Role]string{
	models.RoleStudent:       "student",
	models.RoleFacultyMember: "faculty-member",
	models.RoleAdministrator: "admin",
}

const authSegment = "auth"

// RolePath returns the API path segment serving a role
func RolePath(role models.Role) (string, error) {
	parsed, err := models.ParseRole(string(role))
	if err != nil {
		return "", err
	}
	return rolePaths[parsed], nil
}

// Client talks to the college directory REST API. It never touches the
// session store; callers decide what to keep.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new API client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With("component", "gateway"),
	}
}

// response is a completed HTTP exchange
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// message extracts the server's "message" (or "error") field, if any
func (r response) message() string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func (c *Client) url(segment, action string) string {
	return fmt.Sprintf("%s/api/v1/%s/%s", c.BaseURL, segment, action)
}

// do executes one round trip. Only transport failures are errors here;
// status handling is left to the caller.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	log := c.logger.With("method", method, "url", endpoint, "request_id", requestID)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.WarnContext(ctx, "request failed", "error", err)
		return response{}, &AuthError{Kind: Unreachable, Message: "Unable to reach the server", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WarnContext(ctx, "reading response failed", "error", err)
		return response{}, &AuthError{Kind: Unreachable, Message: "Connection lost while reading the response", Err: err}
	}

	log.DebugContext(ctx, "request completed", "status", resp.StatusCode, "duration", time.Since(start))
	return response{status: resp.StatusCode, body: data}, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return response{}, fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(data), "application/json")
}

// Login authenticates against the endpoint of the given role
func (c *Client) Login(ctx context.Context, email, password string, role models.Role) (session.Session, error) {
	segment, err := RolePath(role)
	if err != nil {
		return session.Session{}, err
	}

	resp, err := c.postJSON(ctx, c.url(segment, "login"), models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return session.Session{}, err
	}
	if !resp.ok() {
		return session.Session{}, failure(InvalidCredentials, resp, "Invalid credentials")
	}
	return c.identity(resp, role)
}

// Register creates an account. The body is JSON, or multipart when a
// profile image is attached.
func (c *Client) Register(ctx context.Context, form models.RegistrationForm) (session.Session, error) {
	segment, err := RolePath(form.Role)
	if err != nil {
		return session.Session{}, err
	}
	endpoint := c.url(segment, "register")

	var resp response
	if form.ProfileImage != nil {
		body, contentType, err := multipartBody(form)
		if err != nil {
			return session.Session{}, err
		}
		resp, err = c.do(ctx, http.MethodPost, endpoint, body, contentType)
		if err != nil {
			return session.Session{}, err
		}
	} else {
		resp, err = c.postJSON(ctx, endpoint, form.Fields())
		if err != nil {
			return session.Session{}, err
		}
	}

	if !resp.ok() {
		return session.Session{}, failure(Rejected, resp, "Registration Failed")
	}
	return c.identity(resp, form.Role)
}

func multipartBody(form models.RegistrationForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, key := range []string{"name", "username", "email", "phone", "password", "dept", "year", "role"} {
		if err := w.WriteField(key, form.Fields()[key]); err != nil {
			return nil, "", fmt.Errorf("failed to encode %s: %w", key, err)
		}
	}

	filename := form.ProfileImage.Filename
	if filename == "" {
		filename = "profile.jpg"
	}
	part, err := w.CreateFormFile("profilePic", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode profile picture: %w", err)
	}
	if _, err := part.Write(form.ProfileImage.Data); err != nil {
		return nil, "", fmt.Errorf("failed to encode profile picture: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to encode registration: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// RequestEmailVerification mails a code proving ownership of a new address
func (c *Client) RequestEmailVerification(ctx context.Context, email string) error {
	return c.accept(ctx, c.url(authSegment, "verify-email"), models.OTPRequest{Email: email},
		"Could not send verification code")
}

// VerifyEmailCode checks a registration code
func (c *Client) VerifyEmailCode(ctx context.Context, email, code string) error {
	return c.accept(ctx, c.url(authSegment, "verify-otp"), models.OTPRequest{Email: email, OTP: code},
		"Invalid or expired code")
}

// RequestPasswordResetCode mails a code to an existing account
func (c *Client) RequestPasswordResetCode(ctx context.Context, email string) error {
	return c.accept(ctx, c.url(authSegment, "forgot-password"), models.OTPRequest{Email: email},
		"Could not send reset code")
}

// VerifyResetCode checks a password reset code
func (c *Client) VerifyResetCode(ctx context.Context, email, code string) error {
	return c.accept(ctx, c.url(authSegment, "verify-otp"), models.OTPRequest{Email: email, OTP: code},
		"Invalid or expired code")
}

// FinalizeReset sets the new password once the code was accepted
func (c *Client) FinalizeReset(ctx context.Context, email, newPassword string) error {
	return c.accept(ctx, c.url(authSegment, "reset-password"), models.PasswordReset{Email: email, NewPassword: newPassword},
		"Password reset failed")
}

// accept treats any 2xx as success and anything else as a rejection
func (c *Client) accept(ctx context.Context, endpoint string, payload any, fallback string) error {
	resp, err := c.postJSON(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return failure(Rejected, resp, fallback)
	}
	return nil
}

func (c *Client) identity(resp response, role models.Role) (session.Session, error) {
	raw, err := decodeObject(resp.body)
	if err != nil {
		return session.Session{}, &AuthError{Kind: MalformedResponse, StatusCode: resp.status,
			Message: "Unexpected response from server", Err: err}
	}
	s, err := identityFrom(raw, role)
	if err != nil {
		return session.Session{}, &AuthError{Kind: MalformedResponse, StatusCode: resp.status,
			Message: "Server response did not include a user id", Err: err}
	}
	return s, nil
}

func failure(kind ErrorKind, resp response, fallback string) *AuthError {
	msg := resp.message()
	if msg == "" {
		msg = fallback
	}
	return &AuthError{Kind: kind, StatusCode: resp.status, Message: msg}
}
