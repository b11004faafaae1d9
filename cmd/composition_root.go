package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/blob/fs"
	"storefront/internal/adapters/out/blob/s3"
	"storefront/internal/adapters/out/meta"
	"storefront/internal/adapters/out/openai"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/session"
	"storefront/internal/adapters/out/stripe"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	urls       services.URLBuilder
	seo        services.SEOBuilder
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	urls := services.NewURLBuilder(cfg.FrontendBaseURL, cfg.BackendBaseURL, cfg.MediaBaseURL)
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		urls:       urls,
		seo:        services.NewSEOBuilder(cfg.BrandName, urls),
		logger:     logger,
	}
}

// Outbound adapters

func (c *CompositionRoot) CreatePaymentGateway() ports.PaymentGateway {
	if c.cfg.StripeSecretKey == "" {
		c.logger.Warn("STRIPE_SECRET_KEY is empty, checkout will fail")
	}
	return stripe.NewGateway(c.cfg.StripeSecretKey, c.cfg.StripeWebhookSecret)
}

// CreateSessionStore uses Redis when REDIS_ADDR is set and process memory otherwise.
func (c *CompositionRoot) CreateSessionStore(ctx context.Context) (ports.SessionStore, error) {
	if c.cfg.RedisAddr == "" {
		c.logger.Warn("REDIS_ADDR is empty, sessions are kept in memory")
		return session.NewMemoryStore(), nil
	}
	store, err := session.NewRedisStore(ctx, session.RedisConfig{
		Addr:     c.cfg.RedisAddr,
		Password: c.cfg.RedisPassword,
		DB:       c.cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (c *CompositionRoot) CreateBlobStore(ctx context.Context) (ports.BlobStore, error) {
	switch c.cfg.BlobDriver {
	case "", "fs":
		store, err := fs.New(c.cfg.BlobFSRoot)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "s3":
		store, err := s3.New(ctx, s3.Config{
			Region:          c.cfg.BlobS3Region,
			Bucket:          c.cfg.BlobS3Bucket,
			Endpoint:        c.cfg.BlobS3Endpoint,
			AccessKeyID:     c.cfg.BlobS3AccessKey,
			SecretAccessKey: c.cfg.BlobS3SecretKey,
			PathStyle:       c.cfg.BlobS3PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown BLOB_DRIVER %q", c.cfg.BlobDriver)
	}
}

func (c *CompositionRoot) CreateConversionsGateway() ports.ConversionsGateway {
	cfg := meta.Config{
		DatasetID:     c.cfg.MetaDatasetID,
		AccessToken:   c.cfg.MetaAccessToken,
		TestEventCode: c.cfg.MetaTestEventCode,
		APIVersion:    c.cfg.MetaAPIVersion,
	}
	if !cfg.Enabled() {
		c.logger.Warn("Meta Conversions API is not configured, events will be skipped")
	}
	return meta.NewGateway(cfg)
}

func (c *CompositionRoot) CreateCategorySuggester() (ports.CategorySuggester, error) {
	client, err := openai.NewClient(openai.Config{
		APIKey:  c.cfg.OpenAIAPIKey,
		BaseURL: c.cfg.OpenAIBaseURL,
		Model:   c.cfg.OpenAIModel,
	}, c.logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (c *CompositionRoot) CreateCatalogFeedWriter() ports.CatalogFeedWriter {
	return queries.NewCatalogFeedWriter(c.gormDB, services.NewFeedBuilder(c.urls, c.cfg.BrandName, c.cfg.StoreCurrency))
}

// Command handlers

func (c *CompositionRoot) cartUoW() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) checkoutUoW() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) trackingUoW() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) outboxUoW() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) catalogUoW() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateCheckoutCommandHandler(payments ports.PaymentGateway) commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(c.checkoutUoW(), payments, c.urls, c.logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.checkoutUoW(), c.logger)
}

func (c *CompositionRoot) CreateAbandonIdleCartsCommandHandler() commands.AbandonIdleCartsCommandHandler {
	return commands.NewAbandonIdleCartsCommandHandler(c.cartUoW())
}

func (c *CompositionRoot) CreateRelayConversionsCommandHandler() commands.RelayConversionsCommandHandler {
	return commands.NewRelayConversionsCommandHandler(c.outboxUoW(), c.CreateConversionsGateway(), c.logger)
}

func (c *CompositionRoot) CreateGenerateFeedCommandHandler(blobs ports.BlobStore) commands.GenerateFeedCommandHandler {
	return commands.NewGenerateFeedCommandHandler(c.CreateCatalogFeedWriter(), blobs, c.logger)
}

func (c *CompositionRoot) CreateSeedCategoriesCommandHandler() commands.SeedCategoriesCommandHandler {
	return commands.NewSeedCategoriesCommandHandler(c.catalogUoW())
}

func (c *CompositionRoot) CreateSeedProductTypesCommandHandler() commands.SeedProductTypesCommandHandler {
	return commands.NewSeedProductTypesCommandHandler(c.catalogUoW())
}

func (c *CompositionRoot) CreateImportProductsCommandHandler(blobs ports.BlobStore) commands.ImportProductsCommandHandler {
	return commands.NewImportProductsCommandHandler(c.catalogUoW(), blobs, c.logger)
}

func (c *CompositionRoot) CreateAutoCategorizeCommandHandler(
	suggester ports.CategorySuggester,
) commands.AutoCategorizeCommandHandler {
	return commands.NewAutoCategorizeCommandHandler(c.catalogUoW(), suggester, c.logger)
}

// Inbound adapters

// CreateHTTPHandlers wires every use case the REST API serves.
func (c *CompositionRoot) CreateHTTPHandlers(payments ports.PaymentGateway) httpin.Handlers {
	return httpin.Handlers{
		ListProducts:       queries.NewListProductsQueryHandler(c.gormDB, c.urls),
		GetProduct:         queries.NewGetProductQueryHandler(c.gormDB, c.urls, c.seo),
		GetCategoryTree:    queries.NewGetCategoryTreeQueryHandler(c.gormDB, c.urls, c.seo),
		GetCategory:        queries.NewGetCategoryQueryHandler(c.gormDB, c.urls, c.seo),
		ListCollections:    queries.NewListCollectionsQueryHandler(c.gormDB, c.urls),
		GetCart:            queries.NewGetCartQueryHandler(c.gormDB, c.urls),
		GetOrder:           queries.NewGetOrderQueryHandler(c.gormDB, c.urls),
		ListOrders:         queries.NewListOrdersQueryHandler(c.gormDB),
		SupportedCountries: queries.NewGetSupportedCountriesQueryHandler(c.urls),

		EnsureCart:        commands.NewEnsureCartCommandHandler(c.cartUoW()),
		AddCartItem:       commands.NewAddCartItemCommandHandler(c.cartUoW()),
		UpdateCartItem:    commands.NewUpdateCartItemCommandHandler(c.cartUoW()),
		RemoveCartItem:    commands.NewRemoveCartItemCommandHandler(c.cartUoW()),
		Checkout:          c.CreateCheckoutCommandHandler(payments),
		ConfirmPayment:    c.CreateConfirmPaymentCommandHandler(),
		UpdateOrderStatus: commands.NewUpdateOrderStatusCommandHandler(c.orderUoW(), c.logger),
		Track:             commands.NewTrackConversionCommandHandler(c.trackingUoW()),

		Feed: c.CreateCatalogFeedWriter(),
	}
}

func (c *CompositionRoot) CreateHTTPConfig() httpin.Config {
	return httpin.Config{
		SessionCookieName:   c.cfg.SessionCookieName,
		SessionCookieSecure: c.cfg.SessionCookieSecure,
		AdminJWTSecret:      c.cfg.AdminJWTSecret,
	}
}

func (c *CompositionRoot) CreateJobManager(blobs ports.BlobStore) *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.Schedules{
			AbandonCarts:     c.cfg.JobAbandonSpec,
			RelayConversions: c.cfg.JobRelaySpec,
			GenerateFeed:     c.cfg.JobFeedSpec,
		},
		c.CreateAbandonIdleCartsCommandHandler(),
		jobs.AbandonAfter(c.cfg.CartAbandonAfter),
		c.CreateRelayConversionsCommandHandler(),
		jobs.RelayLimits{BatchSize: c.cfg.MetaBatchSize, MaxAttempts: c.cfg.MetaMaxAttempts},
		c.CreateGenerateFeedCommandHandler(blobs),
		c.logger,
	)
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}
