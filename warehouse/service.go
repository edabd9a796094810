// Package warehouse is a typed client for the SIM-Buah warehouse API. Every call goes
// through httpclient.Client, so an expired access token is refreshed transparently.
package warehouse

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/simbuah/go-api-http-client/httpclient"
	"github.com/simbuah/go-api-http-client/logger"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Service exposes the warehouse endpoints.
type Service struct {
	client *httpclient.Client
	log    logger.Logger
}

// NewService returns a Service that sends its requests through client.
func NewService(client *httpclient.Client) *Service {
	return &Service{client: client, log: client.Logger}
}

// Client returns the underlying HTTP client.
func (s *Service) Client() *httpclient.Client {
	return s.client
}

// listEnvelope is the {"data": [...]} wrapper some list endpoints use.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// decodeList accepts a bare JSON array or one wrapped in {"data": ...}. An empty body
// or a null list yields an empty slice.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	items := []T{}
	if len(trimmed) == 0 {
		return items, nil
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var envelope listEnvelope[T]
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data != nil {
		items = envelope.Data
	}
	return items, nil
}

func list[T any](ctx context.Context, s *Service, path string, query url.Values) ([]T, error) {
	var opts *httpclient.RequestOptions
	if query != nil {
		opts = &httpclient.RequestOptions{Query: query}
	}

	resp, err := s.client.Get(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}

	items, err := decodeList[T](resp.Body)
	if err != nil {
		return nil, s.log.Error("Failed to decode list response", zap.String("path", path), zap.Error(err))
	}
	return items, nil
}

// send issues a write call and decodes the server's acknowledgement.
func (s *Service) send(ctx context.Context, method, path string, body any) (*MessageResponse, error) {
	message := &MessageResponse{}
	if _, err := s.client.DoRequest(ctx, method, path, body, message); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	s.log.Debug("Warehouse call acknowledged",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("msg", message.Msg),
	)
	return message, nil
}

func resourcePath(collection string, id int) string {
	return fmt.Sprintf("%s/%d", collection, id)
}

// save creates the resource when id is 0 and replaces it otherwise.
func (s *Service) save(ctx context.Context, collection string, id int, body any) (*MessageResponse, error) {
	if id == 0 {
		return s.send(ctx, http.MethodPost, collection, body)
	}
	return s.send(ctx, http.MethodPut, resourcePath(collection, id), body)
}

func (s *Service) remove(ctx context.Context, collection string, id int) (*MessageResponse, error) {
	return s.send(ctx, http.MethodDelete, resourcePath(collection, id), nil)
}
