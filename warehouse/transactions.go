package warehouse

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrNoItems       = errors.New("transaction has no items")
	ErrInvalidStatus = errors.New("invalid transaction status")
)

// ListInbound returns the goods-received transactions.
func (s *Service) ListInbound(ctx context.Context) ([]Inbound, error) {
	return list[Inbound](ctx, s, InboundEndpoint, nil)
}

// CreateInbound records goods received from a supplier. Items without a quality are
// sent as DefaultInboundQuality, and a zero TotalCost is computed from the items.
func (s *Service) CreateInbound(ctx context.Context, input InboundInput) (*MessageResponse, error) {
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}

	items := make([]InboundItem, len(input.Items))
	total := 0.0
	for i, item := range input.Items {
		if item.Quality == "" {
			item.Quality = DefaultInboundQuality
		}
		items[i] = item
		total += item.InitialStock * item.PurchasePrice
	}
	input.Items = items
	if input.TotalCost == 0 {
		input.TotalCost = total
	}

	return s.send(ctx, http.MethodPost, InboundEndpoint, input)
}

// ListOutbound returns the sales transactions.
func (s *Service) ListOutbound(ctx context.Context) ([]Outbound, error) {
	return list[Outbound](ctx, s, OutboundEndpoint, nil)
}

// CreateOutbound records a sale. A zero TotalSales is computed from the items.
func (s *Service) CreateOutbound(ctx context.Context, input OutboundInput) (*MessageResponse, error) {
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}
	if input.TotalSales == 0 {
		for _, item := range input.Items {
			input.TotalSales += item.Quantity * item.UnitPrice
		}
	}
	return s.send(ctx, http.MethodPost, OutboundEndpoint, input)
}

// UpdateOutboundStatus moves sale id to status, one of StatusProcessing,
// StatusShipped or StatusCancelled.
func (s *Service) UpdateOutboundStatus(ctx context.Context, id int, status string) (*MessageResponse, error) {
	switch status {
	case StatusProcessing, StatusShipped, StatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}
	return s.send(ctx, http.MethodPut, resourcePath(OutboundEndpoint, id), map[string]string{"status": status})
}

func (s *Service) DeleteOutbound(ctx context.Context, id int) (*MessageResponse, error) {
	return s.remove(ctx, OutboundEndpoint, id)
}
