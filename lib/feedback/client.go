// Package feedback asks a chat-completions service for short encouraging
// feedback on journal entries.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	errs "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

var ErrMissingAPIKey = errs.New("no API key configured for feedback generation")

type Generator interface {
	Generate(ctx context.Context, content string) Result
}

type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	Locale      string
	// Observe, when set, is called with "success" or "failure" after
	// every remote call.
	Observe func(outcome string)
}

type Client struct {
	opts Options
	http *http.Client
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openai.com/v1"
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o"
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 100
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// Generate never returns an error directly; failures are carried in the
// Result. Blank content yields an empty success without a remote call.
func (c *Client) Generate(ctx context.Context, content string) Result {
	if strings.TrimSpace(content) == "" {
		return Success("")
	}

	text, err := c.complete(ctx, Prompt(c.opts.Locale, content))
	if err != nil {
		logrus.Warn(errors.Wrap(err, "generating feedback"))
		c.observe("failure")
		return Failure(err)
	}
	c.observe("success")
	return Success(text)
}

func (c *Client) observe(outcome string) {
	if c.opts.Observe != nil {
		c.opts.Observe(outcome)
	}
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.opts.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.opts.Model,
		Messages:    []message{{Role: "user", Content: prompt}},
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshalling chat request")
	}

	endpoint := strings.TrimRight(c.opts.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "creating chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "sending chat request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading chat response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(respBody, "error.message").String()
		if msg == "" {
			msg = string(respBody)
		}
		return "", fmt.Errorf("chat request returned %d: %s", resp.StatusCode, msg)
	}

	if !gjson.ValidBytes(respBody) {
		return "", fmt.Errorf("chat response is not valid JSON")
	}

	content := gjson.GetBytes(respBody, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("no choices in chat response")
	}
	return strings.TrimSpace(content.String()), nil
}
