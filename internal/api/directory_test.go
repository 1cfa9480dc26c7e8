package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/student/profile/42", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(w, http.StatusOK, `{"Id": 42, "name": "Ann", "dept": "Civil", "year": "2nd Year", "cgpa": 8.7}`)
	})

	rec, err := client.StudentProfile(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", rec.ID)
	assert.Equal(t, "Civil", rec.Department)
	assert.Equal(t, "2nd Year", rec.Year)
	assert.Contains(t, rec.Extra, "cgpa")
}

func TestStudentProfileNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.StudentProfile(context.Background(), "1")
	assert.True(t, IsRejected(err))
	assert.Equal(t, "Profile not found", UserMessage(err))
}

func TestListFacultyNormalizesRecords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/faculty-member/list-faculty", r.URL.Path)
		writeJSON(w, http.StatusOK, `[
			{"id": 1, "name": "Rao", "department": {"dept": "Civil"}, "contact": "9999999999"},
			{"ID": "2", "name": "Iyer", "department": "Mathematics", "phone": "8888888888"}
		]`)
	})

	recs, err := client.ListFaculty(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Civil", recs[0].Department)
	assert.Equal(t, "9999999999", recs[0].Phone)
	assert.Equal(t, "2", recs[1].ID)
	assert.Equal(t, "Mathematics", recs[1].Department)
}

func TestListStudentsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"not": "a list"}`)
	})

	_, err := client.ListStudents(context.Background())
	assert.True(t, IsMalformedResponse(err))
}

func TestStudentCoursesAndAdvisors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/student/42/courses":
			writeJSON(w, http.StatusOK, `[{"code": "CS101", "title": "Programming"}]`)
		case "/api/v1/student/42/advisors":
			writeJSON(w, http.StatusOK, `[{"id": 3, "name": "Rao"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	courses, err := client.StudentCourses(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "CS101", courses[0]["code"])

	advisors, err := client.StudentAdvisors(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Rao", advisors[0].Name)
}
