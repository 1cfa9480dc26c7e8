// Package otp implements the email ownership check shared by registration
// and password reset. A Challenge moves NotSent -> Sent -> Verified and
// only unlocks its finalize action once Verified.
package otp

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// State is the position of a challenge in its lifecycle
type State int

const (
	NotSent State = iota
	Sent
	Verified
)

func (s State) String() string {
	switch s {
	case NotSent:
		return "NOT_SENT"
	case Sent:
		return "SENT"
	case Verified:
		return "VERIFIED"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrEmailRequired   = errors.New("email is required")
	ErrCodeRequired    = errors.New("verification code is required")
	ErrCodeNotSent     = errors.New("no verification code has been sent yet")
	ErrAlreadyVerified = errors.New("email is already verified")
	ErrNotVerified     = errors.New("email has not been verified")
	ErrBusy            = errors.New("a verification request is already in progress")
	ErrSuperseded      = errors.New("verification was restarted")
)

// Verifier sends codes to an address and checks codes entered by the user
type Verifier interface {
	SendCode(ctx context.Context, email string) error
	CheckCode(ctx context.Context, email, code string) error
}

// VerifierFuncs adapts two functions to a Verifier
type VerifierFuncs struct {
	Send  func(ctx context.Context, email string) error
	Check func(ctx context.Context, email, code string) error
}

func (f VerifierFuncs) SendCode(ctx context.Context, email string) error {
	return f.Send(ctx, email)
}

func (f VerifierFuncs) CheckCode(ctx context.Context, email, code string) error {
	return f.Check(ctx, email, code)
}

// Finalizer is the action a verified challenge unlocks
type Finalizer func(ctx context.Context, email string) error

// Challenge is one in-flight email verification
type Challenge struct {
	verifier Verifier
	finalize Finalizer

	mu         sync.Mutex
	state      State
	email      string
	code       string
	busy       bool
	generation uint64
}

// New returns a challenge in the NotSent state
func New(verifier Verifier, finalize Finalizer) *Challenge {
	if finalize == nil {
		finalize = func(context.Context, string) error { return nil }
	}
	return &Challenge{verifier: verifier, finalize: finalize}
}

// State returns the current state
func (c *Challenge) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Email returns the address the code was sent to
func (c *Challenge) Email() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.email
}

// RequestCode asks the server to mail a code. Calling it again while Sent
// re-sends; the server is expected to retire the earlier code and the
// entered code is discarded.
func (c *Challenge) RequestCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}

	gen, err := c.begin(func() error {
		if c.state == Verified {
			return ErrAlreadyVerified
		}
		return nil
	})
	if err != nil {
		return err
	}

	sendErr := c.verifier.SendCode(ctx, email)

	return c.end(gen, func() error {
		if sendErr != nil {
			return sendErr
		}
		c.state = Sent
		c.email = email
		c.code = ""
		return nil
	})
}

// SubmitCode checks the code the user typed. A rejected code leaves the
// challenge in Sent; there is no limit on attempts.
func (c *Challenge) SubmitCode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)

	var email string
	gen, err := c.begin(func() error {
		switch c.state {
		case NotSent:
			return ErrCodeNotSent
		case Verified:
			return ErrAlreadyVerified
		}
		if code == "" {
			return ErrCodeRequired
		}
		email = c.email
		c.code = code
		return nil
	})
	if err != nil {
		return err
	}

	checkErr := c.verifier.CheckCode(ctx, email, code)

	return c.end(gen, func() error {
		if checkErr != nil {
			return checkErr
		}
		c.state = Verified
		return nil
	})
}

// Finalize runs the unlocked action. It is refused unless the challenge is
// Verified.
func (c *Challenge) Finalize(ctx context.Context) error {
	var email string
	gen, err := c.begin(func() error {
		if c.state != Verified {
			return ErrNotVerified
		}
		email = c.email
		return nil
	})
	if err != nil {
		return err
	}

	finalErr := c.finalize(ctx, email)

	return c.end(gen, func() error { return finalErr })
}

// Reset returns the challenge to NotSent from any state. A request still in
// flight finishes with ErrSuperseded and its result is dropped.
func (c *Challenge) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = NotSent
	c.email = ""
	c.code = ""
	c.busy = false
	c.generation++
}

func (c *Challenge) begin(check func() error) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return 0, ErrBusy
	}
	if err := check(); err != nil {
		return 0, err
	}
	c.busy = true
	return c.generation, nil
}

func (c *Challenge) end(gen uint64, apply func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return ErrSuperseded
	}
	c.busy = false
	return apply()
}
