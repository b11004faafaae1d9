package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"
	"storefront/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type RelayResult struct {
	Claimed int
	Sent    int
	Failed  int
	Skipped int
}

// RelayConversionsCommandHandler claims PENDING events with SKIP LOCKED, sends them
// in one request and records the outcome on each event before committing. Events
// stay locked while the request is in flight, so concurrent relays never send the
// same event twice.
type RelayConversionsCommandHandler struct {
	uowFactory OutboxUoWFactory
	gateway    ports.ConversionsGateway
	logger     *slog.Logger
}

func NewRelayConversionsCommandHandler(
	uowFactory OutboxUoWFactory,
	gateway ports.ConversionsGateway,
	logger *slog.Logger,
) RelayConversionsCommandHandler {
	return RelayConversionsCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		logger:     logger.With("component", "RelayConversionsCommandHandler"),
	}
}

func (h RelayConversionsCommandHandler) Handle(ctx context.Context, cmd RelayConversionsCommand) (res RelayResult, err error) {
	if err = cmd.Validate(); err != nil {
		return RelayResult{}, err
	}

	ctx, span := tracing.Start(ctx, "conversions.relay")
	defer func() { tracing.End(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return RelayResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events := uow.ConversionEventRepository()
	batch, err := events.ClaimPending(ctx, cmd.BatchSize())
	if err != nil {
		return RelayResult{}, err
	}
	res.Claimed = len(batch)
	span.SetAttributes(attribute.Int("events.claimed", len(batch)))
	if len(batch) == 0 {
		return res, uow.Commit(ctx)
	}

	sendErr := h.gateway.Send(ctx, batch)
	for _, e := range batch {
		result := h.apply(e, sendErr, cmd.MaxAttempts())
		switch e.Status() {
		case tracking.DeliverySent:
			res.Sent++
		case tracking.DeliverySkipped:
			res.Skipped++
		case tracking.DeliveryFailed:
			res.Failed++
		case tracking.DeliveryPending:
		}
		if err = events.Update(ctx, e); err != nil {
			return RelayResult{}, err
		}
		metrics.ConversionEvents.WithLabelValues(string(e.Name()), result).Inc()
	}
	if err = uow.Commit(ctx); err != nil {
		return RelayResult{}, err
	}

	if sendErr != nil && !errors.Is(sendErr, ports.ErrConversionsDisabled) {
		h.logger.Warn("Meta CAPI delivery failed", "events", len(batch), "error", sendErr)
	}
	h.logger.Info("Conversion events relayed",
		"claimed", res.Claimed, "sent", res.Sent, "failed", res.Failed, "skipped", res.Skipped)
	return res, nil
}

// apply records the delivery outcome on e and returns its metrics label.
func (h RelayConversionsCommandHandler) apply(e *tracking.ConversionEvent, sendErr error, maxAttempts int) string {
	switch {
	case sendErr == nil:
		e.MarkSent()
		return "sent"
	case errors.Is(sendErr, ports.ErrConversionsDisabled):
		e.MarkSkipped(sendErr.Error())
		return "skipped"
	default:
		e.RecordFailure(sendErr, maxAttempts)
		if e.Status() == tracking.DeliveryFailed {
			return "failed"
		}
		return "retry"
	}
}
