// Package avatar resolves the site owner's profile picture through the
// Instagram Graph API so the image can be served from our own domain.
package avatar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/paulbarron/portfolio/internal/config"
)

// ErrNoProfilePicture is returned when the profile exists but carries no
// picture URL
var ErrNoProfilePicture = errors.New("profile has no picture")

type profileResponse struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

type Client struct {
	client *resty.Client
	apiURL string
	token  string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		client: resty.New().
			SetTimeout(15 * time.Second),
		apiURL: cfg.IGAPIURL,
		token:  cfg.IGAccessToken,
	}
}

// Configured reports whether an access token is available
func (c *Client) Configured() bool {
	return c.token != ""
}

// ProfilePictureURL asks the Graph API for the current profile picture URL
func (c *Client) ProfilePictureURL(ctx context.Context) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("fields", "id,username,profile_picture_url").
		SetQueryParam("access_token", c.token).
		Get(c.apiURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profile: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d from profile API", resp.StatusCode())
	}

	var profile profileResponse
	if err := json.Unmarshal(resp.Body(), &profile); err != nil {
		return "", fmt.Errorf("failed to parse profile response: %w", err)
	}

	if profile.ProfilePictureURL == "" {
		return "", ErrNoProfilePicture
	}
	return profile.ProfilePictureURL, nil
}

// FetchImage retrieves the raw image bytes and their content type
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code %d fetching image", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return resp.Body(), contentType, nil
}
