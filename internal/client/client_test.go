package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseClient_GetCourse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/courses/course-1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"course-1","title":"Go Basics","price":49.99}`))
		}))
		defer srv.Close()

		course, err := NewCourseClient(srv.URL).GetCourse(context.Background(), "course-1")
		require.NoError(t, err)
		assert.Equal(t, "Go Basics", course.Title)
		assert.Equal(t, 49.99, course.Price)
	})

	t.Run("NotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewCourseClient(srv.URL).GetCourse(context.Background(), "missing")
		assert.True(t, errors.Is(err, ErrCourseNotFound))
	})

	t.Run("MalformedBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":`))
		}))
		defer srv.Close()

		_, err := NewCourseClient(srv.URL).GetCourse(context.Background(), "course-1")
		assert.ErrorContains(t, err, "malformed lookup response")
	})

	t.Run("UpstreamError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewCourseClient(srv.URL).GetCourse(context.Background(), "course-1")
		assert.ErrorContains(t, err, "status 500")
	})
}

func TestUserClient_GetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/u1", r.URL.Path)
			_, _ = w.Write([]byte(`{"id":"u1","name":"Student","email":"u1@x.com"}`))
		}))
		defer srv.Close()

		user, err := NewUserClient(srv.URL).GetUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1@x.com", user.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewUserClient(srv.URL).GetUser(context.Background(), "nope")
		assert.True(t, errors.Is(err, ErrUserNotFound))
	})
}
