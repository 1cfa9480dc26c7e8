package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/collegedir/cli/internal/models"
)

// StudentProfile fetches the profile behind a student session
func (c *Client) StudentProfile(ctx context.Context, id string) (models.Record, error) {
	return c.getRecord(ctx, c.url(rolePaths[models.RoleStudent], "profile/"+url.PathEscape(id)), "Profile not found")
}

// FacultyProfile fetches the profile behind a faculty session
func (c *Client) FacultyProfile(ctx context.Context, id string) (models.Record, error) {
	return c.getRecord(ctx, c.url(rolePaths[models.RoleFacultyMember], "profile/"+url.PathEscape(id)), "Profile not found")
}

// StudentCourses lists the courses a student is enrolled in
func (c *Client) StudentCourses(ctx context.Context, id string) ([]map[string]any, error) {
	resp, err := c.get(ctx, c.url(rolePaths[models.RoleStudent], url.PathEscape(id)+"/courses"), "Failed to load courses")
	if err != nil {
		return nil, err
	}
	list, err := decodeList(resp.body)
	if err != nil {
		return nil, malformed(resp, err)
	}
	return list, nil
}

// StudentAdvisors lists the faculty advising a student
func (c *Client) StudentAdvisors(ctx context.Context, id string) ([]models.Record, error) {
	return c.getRecords(ctx, c.url(rolePaths[models.RoleStudent], url.PathEscape(id)+"/advisors"), "Failed to load advisors")
}

// ListStudents returns every registered student
func (c *Client) ListStudents(ctx context.Context) ([]models.Record, error) {
	return c.getRecords(ctx, c.url(rolePaths[models.RoleStudent], "list-student"), "Failed to load students")
}

// ListFaculty returns every faculty member
func (c *Client) ListFaculty(ctx context.Context) ([]models.Record, error) {
	return c.getRecords(ctx, c.url(rolePaths[models.RoleFacultyMember], "list-faculty"), "Failed to load faculty")
}

func (c *Client) get(ctx context.Context, endpoint, fallback string) (response, error) {
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return response{}, err
	}
	if !resp.ok() {
		return response{}, failure(Rejected, resp, fallback)
	}
	return resp, nil
}

func (c *Client) getRecord(ctx context.Context, endpoint, fallback string) (models.Record, error) {
	resp, err := c.get(ctx, endpoint, fallback)
	if err != nil {
		return models.Record{}, err
	}
	raw, err := decodeObject(resp.body)
	if err != nil {
		return models.Record{}, malformed(resp, err)
	}
	return recordFrom(raw), nil
}

func (c *Client) getRecords(ctx context.Context, endpoint, fallback string) ([]models.Record, error) {
	resp, err := c.get(ctx, endpoint, fallback)
	if err != nil {
		return nil, err
	}
	raw, err := decodeList(resp.body)
	if err != nil {
		return nil, malformed(resp, err)
	}
	return recordsFrom(raw), nil
}

func malformed(resp response, err error) *AuthError {
	return &AuthError{
		Kind:       MalformedResponse,
		StatusCode: resp.status,
		Message:    fmt.Sprintf("Unexpected response from server (%d)", resp.status),
		Err:        err,
	}
}
