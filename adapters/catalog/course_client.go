package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/config"
	"github.com/khoahotran/skillfolio/internal/domain/guidance"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

const (
	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 1 << 20
)

type courseResponse struct {
	Courses []guidance.Course `json:"courses"`
}

type courseClient struct {
	baseURL string
	apiKey  string
	apiHost string
	http    *http.Client
	log     logger.Logger
}

// NewCourseClient talks to a JSON course search API:
// GET <base_url>/courses?query=<q>&limit=<n> answering {"courses":[...]}.
func NewCourseClient(cfg config.Config, log logger.Logger) (service.CourseCatalog, error) {
	c := cfg.Courses
	if c.BaseURL == "" {
		return nil, fmt.Errorf("courses base_url is not configured")
	}
	if c.APIKey == "" {
		return nil, fmt.Errorf("courses api_key is not configured")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid courses base_url: %w", err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	log.Info("Course catalog client initialized", zap.String("base_url", c.BaseURL))
	return &courseClient{
		baseURL: strings.TrimSuffix(c.BaseURL, "/"),
		apiKey:  c.APIKey,
		apiHost: c.APIHost,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

func (c *courseClient) Search(ctx context.Context, query string, limit int) ([]guidance.Course, error) {
	params := url.Values{}
	params.Set("query", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/courses?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build course request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	if c.apiHost != "" {
		req.Header.Set("X-API-Host", c.apiHost)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("course request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("course api returned status %d", resp.StatusCode)
	}

	var out courseResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode course response: %w", err)
	}

	courses := make([]guidance.Course, 0, len(out.Courses))
	for _, course := range out.Courses {
		if strings.TrimSpace(course.Title) == "" {
			continue
		}
		courses = append(courses, course)
	}
	if limit > 0 && len(courses) > limit {
		courses = courses[:limit]
	}
	return courses, nil
}
