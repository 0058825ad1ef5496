// Package telegram is a minimal Bot API client: sendMessage and getMe over
// plain HTTP, plus the update payload types and command grammar the relay
// consumes.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// ParseModeMarkdownV2 requests MarkdownV2 rendering for a message.
const ParseModeMarkdownV2 = "MarkdownV2"

// Client talks to the Telegram Bot API.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the given bot token.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// NewClientWithBaseURL is NewClient pointed at a different API host (tests).
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// Send delivers text to chatID. parseMode may be empty for plain text.
// Telegram accepts chat ids as strings, which matches the TEXT ChannelID
// column.
func (c *Client) Send(ctx context.Context, chatID, text, parseMode string) error {
	// Telegram max message length is 4096 chars.
	if len(text) > 4096 {
		text = text[:4093] + "..."
	}
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if parseMode != "" {
		payload["parse_mode"] = parseMode
	}
	return c.post(ctx, "sendMessage", payload, nil)
}

// Me returns the bot's own username, verifying the token (doctor check).
func (c *Client) Me(ctx context.Context) (string, error) {
	var resp struct {
		Result struct {
			Username string `json:"username"`
		} `json:"result"`
	}
	if err := c.post(ctx, "getMe", map[string]any{}, &resp); err != nil {
		return "", err
	}
	return resp.Result.Username, nil
}

func (c *Client) post(ctx context.Context, method string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram API %s returned %d", method, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
