package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Client talks to the external media host. It uploads raw image bytes into a
// logical folder and hands back the durable HTTPS URL; the rest of the
// system only ever stores that URL.
type Client struct {
	client    *resty.Client
	uploadURL string
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(baseURL, apiKey string, opts ...func(*resty.Client)) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("media base url required")
	}

	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	for _, opt := range opts {
		opt(client)
	}

	return &Client{
		client:    client,
		uploadURL: strings.TrimRight(baseURL, "/") + "/upload",
	}, nil
}

// UploadImage posts the file as multipart form data. The stored object name
// is a fresh UUID so repeated uploads of the same filename never collide.
func (c *Client) UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, error) {
	publicID := uuid.NewString() + strings.ToLower(path.Ext(filename))

	var payload uploadResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("file", publicID, file).
		SetFormData(map[string]string{
			"folder":        folder,
			"resource_type": "image",
		}).
		SetResult(&payload).
		SetError(&payload).
		Post(c.uploadURL)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	if resp.StatusCode() >= 400 {
		msg := payload.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("media host responded %d: %s", resp.StatusCode(), msg)
	}

	if payload.SecureURL == "" {
		return "", fmt.Errorf("media host returned no url")
	}
	return payload.SecureURL, nil
}
