package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/metrics"
)

// TrackConversionCommandHandler writes conversion events to the outbox in the same
// transaction that reads the entities they describe. Delivery happens later in
// RelayConversionsCommandHandler.
type TrackConversionCommandHandler struct {
	uowFactory TrackingUoWFactory
	now        func() time.Time
}

func NewTrackConversionCommandHandler(uowFactory TrackingUoWFactory) TrackConversionCommandHandler {
	return TrackConversionCommandHandler{uowFactory: uowFactory, now: time.Now}
}

func (h TrackConversionCommandHandler) HandleViewContent(ctx context.Context, cmd TrackViewContentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.track(ctx, func(uow TrackingUoW) (*tracking.ConversionEvent, error) {
		products := uow.ProductRepository()
		product, err := products.FindBySlug(ctx, cmd.productSlug)
		if err != nil {
			return nil, err
		}

		price := product.BasePrice()
		contentID := product.ID().String()
		if cmd.variantSKU != "" {
			variant, vErr := products.FindVariantBySKU(ctx, cmd.variantSKU)
			switch {
			case vErr == nil:
				price = variant.Price()
				contentID = variant.ID().String()
			case !errors.Is(vErr, errs.ErrObjectNotFound):
				return nil, vErr
			}
		}

		return h.event(tracking.ViewContent, cmd.tracking.EventID, cmd.tracking, tracking.CustomData{
			Currency:    price.Currency(),
			Value:       price.Float64(),
			ContentIDs:  []string{contentID},
			ContentName: product.Title(),
		})
	})
}

func (h TrackConversionCommandHandler) HandleAddToCart(ctx context.Context, cmd TrackAddToCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.track(ctx, func(uow TrackingUoW) (*tracking.ConversionEvent, error) {
		products := uow.ProductRepository()
		variant, err := products.FindVariantBySKU(ctx, cmd.variantSKU)
		if err != nil {
			return nil, err
		}
		product, err := products.Get(ctx, variant.ProductID())
		if err != nil {
			return nil, err
		}

		value := variant.Price().Multiply(cmd.quantity)
		return h.event(tracking.AddToCart, cmd.tracking.EventID, cmd.tracking, tracking.CustomData{
			Currency:    value.Currency(),
			Value:       value.Float64(),
			ContentIDs:  []string{variant.ID().String()},
			ContentName: product.Title(),
		})
	})
}

func (h TrackConversionCommandHandler) HandleInitiateCheckout(ctx context.Context, cmd TrackInitiateCheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.track(ctx, func(uow TrackingUoW) (*tracking.ConversionEvent, error) {
		c, err := uow.CartRepository().FindActiveBySessionKey(ctx, cmd.sessionKey)
		if err != nil {
			return nil, err
		}

		contentIDs := make([]string, 0, len(c.Items()))
		for _, item := range c.Items() {
			contentIDs = append(contentIDs, item.Variant().ID.String())
		}
		total, err := c.TotalPrice(kernel.DefaultCurrency)
		if err != nil {
			return nil, err
		}

		return h.event(tracking.InitiateCheckout, cmd.tracking.EventID, cmd.tracking, tracking.CustomData{
			Currency:   total.Currency(),
			Value:      total.Float64(),
			ContentIDs: contentIDs,
			NumItems:   len(contentIDs),
		})
	})
}

func (h TrackConversionCommandHandler) HandlePurchase(ctx context.Context, cmd TrackPurchaseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.track(ctx, func(uow TrackingUoW) (*tracking.ConversionEvent, error) {
		number, err := order.ParseNumber(cmd.orderNumber)
		if err != nil {
			return nil, errs.NewObjectNotFoundErrorWithCause("order", cmd.orderNumber, err)
		}
		o, err := uow.OrderRepository().FindByNumber(ctx, number)
		if err != nil {
			return nil, err
		}

		addr := o.ShippingAddress()
		buyer := tracking.UserData{
			Email:     o.Email().String(),
			Phone:     addr.Phone(),
			FirstName: addr.FirstName(),
			LastName:  addr.LastName(),
			City:      addr.City(),
			State:     addr.State(),
			ZipCode:   addr.PostalCode(),
			Country:   addr.Country().Code(),
		}
		tc := cmd.tracking
		tc.User = buyer.Merge(tc.User)

		var contentIDs []string
		for _, item := range o.Items() {
			if id := item.VariantID(); id != nil {
				contentIDs = append(contentIDs, id.String())
			}
		}

		return h.event(tracking.Purchase, number.String(), tc, tracking.CustomData{
			Currency:   o.Total().Currency(),
			Value:      o.Total().Float64(),
			ContentIDs: contentIDs,
			NumItems:   len(contentIDs),
			OrderID:    number.String(),
		})
	})
}

func (h TrackConversionCommandHandler) event(
	name tracking.EventName,
	eventID string,
	tc TrackingContext,
	custom tracking.CustomData,
) (*tracking.ConversionEvent, error) {
	return tracking.NewConversionEvent(name, eventID, tc.URL, h.now(), tc.User,
		custom.WithDefaults(kernel.DefaultCurrency))
}

func (h TrackConversionCommandHandler) track(
	ctx context.Context,
	build func(uow TrackingUoW) (*tracking.ConversionEvent, error),
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	event, err := build(uow)
	if err != nil {
		return err
	}
	if err = uow.ConversionEventRepository().Add(ctx, event); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}
	metrics.ConversionEvents.WithLabelValues(string(event.Name()), "queued").Inc()
	return nil
}
