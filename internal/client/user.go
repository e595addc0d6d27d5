package client

import (
	"context"
	"fmt"
	"net/http"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserClient queries the sibling user service for identity data.
type UserClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewUserClient(baseURL string) *UserClient {
	return &UserClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: lookupTimeout,
		},
	}
}

func (c *UserClient) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	url := fmt.Sprintf("%s/users/%s", c.baseURL, id)
	if err := get(ctx, c.httpClient, url, ErrUserNotFound, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
