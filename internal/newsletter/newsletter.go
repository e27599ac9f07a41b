// Package newsletter forwards subscription requests to the Mailchimp
// list-management API.
package newsletter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/paulbarron/portfolio/internal/config"
	"github.com/paulbarron/portfolio/internal/logger"
)

type memberRequest struct {
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
}

type mailchimpError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

// Result describes the outcome of a subscription attempt
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type Client struct {
	client     *resty.Client
	apiKey     string
	membersURL string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		client: resty.New().
			SetTimeout(15 * time.Second),
		apiKey: cfg.MailchimpAPIKey,
		membersURL: fmt.Sprintf("https://%s.api.mailchimp.com/3.0/lists/%s/members",
			cfg.MailchimpServerPrefix, cfg.MailchimpAudienceID),
	}
}

// Subscribe adds an email address to the configured audience.
// An already-subscribed address is treated as success.
func (c *Client) Subscribe(ctx context.Context, email string) (Result, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "apikey "+c.apiKey).
		SetBody(memberRequest{EmailAddress: email, Status: "subscribed"}).
		Post(c.membersURL)
	if err != nil {
		return Result{}, fmt.Errorf("failed to reach Mailchimp: %w", err)
	}

	if resp.IsSuccess() {
		return Result{OK: true, Message: "Thanks for subscribing!"}, nil
	}

	var apiErr mailchimpError
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Title == "Member Exists" {
		return Result{OK: true, Message: "You are already subscribed."}, nil
	}

	logger.Get().Error().
		Int("status", resp.StatusCode()).
		Str("title", apiErr.Title).
		Msg("Mailchimp rejected subscription")

	return Result{}, fmt.Errorf("mailchimp returned status %d", resp.StatusCode())
}
