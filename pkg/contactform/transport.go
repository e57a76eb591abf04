package contactform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"kanam-academy-backend/internal/domain"
)

// DefaultEndpoint is the local development submission URL.
const DefaultEndpoint = "http://localhost:8080/v1/contact"

// Transport delivers one submission.
type Transport interface {
	Submit(ctx context.Context, req domain.ContactRequest) error
}

// ServerError is a non-2xx answer from the submission endpoint. Message holds the
// server's error text and may be empty.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contactform: server responded %d", e.Status)
	}
	return fmt.Sprintf("contactform: server responded %d: %s", e.Status, e.Message)
}

// HTTPTransport posts submissions as JSON. It never retries.
type HTTPTransport struct {
	client   *resty.Client
	endpoint string
}

func NewHTTPTransport(endpoint string, timeout time.Duration) *HTTPTransport {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPTransport{
		client:   client,
		endpoint: endpoint,
	}
}

type okBody struct {
	OK bool `json:"ok"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (t *HTTPTransport) Submit(ctx context.Context, req domain.ContactRequest) error {
	var result okBody
	var failure errorBody

	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&failure).
		Post(t.endpoint)
	if err != nil {
		return fmt.Errorf("contactform: post: %w", err)
	}

	if resp.IsError() {
		return &ServerError{Status: resp.StatusCode(), Message: failure.Error}
	}
	if !result.OK {
		return errors.New("contactform: server did not confirm delivery")
	}
	return nil
}
