package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillfolio/internal/config"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

func testConfig(url string) config.Config {
	var cfg config.Config
	cfg.Courses.BaseURL = url
	cfg.Courses.APIKey = "secret"
	cfg.Courses.APIHost = "courses.example.com"
	cfg.Courses.Timeout = 2 * time.Second
	return cfg
}

func TestNewCourseClient_RequiresConfig(t *testing.T) {
	_, err := NewCourseClient(config.Config{}, logger.NewNopLogger())
	assert.Error(t, err)

	cfg := testConfig("http://localhost")
	cfg.Courses.APIKey = ""
	_, err = NewCourseClient(cfg, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestNewCourseClient_DefaultTimeout(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.Courses.Timeout = 0

	c, err := NewCourseClient(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, c.(*courseClient).http.Timeout)
}

func TestSearch_SendsHeadersAndParsesCourses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses", r.URL.Path)
		assert.Equal(t, "nursing", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		assert.Equal(t, "courses.example.com", r.Header.Get("X-API-Host"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"courses":[
			{"title":"Nursing 101","provider":"OpenU","rating":4.6},
			{"title":"","provider":"skipped"},
			{"title":"Patient Safety","provider":"HealthEd"},
			{"title":"Extra","provider":"X"}
		]}`))
	}))
	defer srv.Close()

	c, err := NewCourseClient(testConfig(srv.URL+"/"), logger.NewNopLogger())
	require.NoError(t, err)

	courses, err := c.Search(context.Background(), "nursing", 2)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Nursing 101", courses[0].Title)
	assert.Equal(t, "Patient Safety", courses[1].Title)
}

func TestSearch_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewCourseClient(testConfig(srv.URL), logger.NewNopLogger())
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "gis", 5)
	assert.ErrorContains(t, err, "429")
}

func TestSearch_MalformedBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	c, err := NewCourseClient(testConfig(srv.URL), logger.NewNopLogger())
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "soil", 5)
	assert.Error(t, err)
}
