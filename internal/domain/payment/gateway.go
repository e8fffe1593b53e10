package payment

import (
	"context"
	"fmt"

	"github.com/stayhost/stayhost-api/internal/pkg/processor"
)

// Gateway is the payment processor as seen by the payment service
type Gateway interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
	CancelIntent(ctx context.Context, id string) (*Intent, error)
	RefundIntent(ctx context.Context, id string) error
}

type processorGateway struct {
	client *processor.Client
}

// NewProcessorGateway adapts the processor REST client to Gateway
func NewProcessorGateway(client *processor.Client) Gateway {
	return &processorGateway{client: client}
}

func (g *processorGateway) CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	capture := processor.CaptureAutomatic
	if params.ManualCapture {
		capture = processor.CaptureManual
	}

	intent, err := g.client.CreateIntent(ctx, processor.CreateIntentRequest{
		Amount:        params.AmountCents,
		Currency:      params.Currency,
		CaptureMethod: capture,
		Description:   fmt.Sprintf("Booking %s %s", params.BookingID, params.Purpose),
		Metadata: map[string]string{
			"booking_id": params.BookingID.String(),
			"purpose":    string(params.Purpose),
		},
		IdempotencyKey: params.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}
	return FromProcessor(intent), nil
}

func (g *processorGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	intent, err := g.client.GetIntent(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromProcessor(intent), nil
}

func (g *processorGateway) CancelIntent(ctx context.Context, id string) (*Intent, error) {
	intent, err := g.client.CancelIntent(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromProcessor(intent), nil
}

func (g *processorGateway) RefundIntent(ctx context.Context, id string) error {
	_, err := g.client.RefundIntent(ctx, id)
	return err
}

// FromProcessor converts a processor intent
func FromProcessor(in *processor.Intent) *Intent {
	if in == nil {
		return nil
	}
	return &Intent{
		ID:           in.ID,
		Status:       in.Status,
		AmountCents:  in.Amount,
		Currency:     in.Currency,
		ClientSecret: in.ClientSecret,
	}
}
