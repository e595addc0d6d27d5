package client

import (
	"context"
	"fmt"
	"net/http"
)

type Course struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// CourseClient queries the sibling course service for pricing data.
type CourseClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCourseClient(baseURL string) *CourseClient {
	return &CourseClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: lookupTimeout,
		},
	}
}

func (c *CourseClient) GetCourse(ctx context.Context, id string) (*Course, error) {
	var course Course
	url := fmt.Sprintf("%s/courses/%s", c.baseURL, id)
	if err := get(ctx, c.httpClient, url, ErrCourseNotFound, &course); err != nil {
		return nil, err
	}
	return &course, nil
}
