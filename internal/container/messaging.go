package container

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/samber/do"
	"github.com/serroba/recipe-links/internal/analytics"
	analyticsstore "github.com/serroba/recipe-links/internal/analytics/store"
	"github.com/serroba/recipe-links/internal/messaging"
	"go.uber.org/zap"
)

// ConsumerConfig configures the analytics consumer from the environment.
type ConsumerConfig struct {
	RedisAddr      string `env:"REDIS_ADDR"      envDefault:"localhost:6379"`
	DatabaseURL    string `env:"DATABASE_URL"`
	AnalyticsStore string `env:"ANALYTICS_STORE" envDefault:"noop"`
	LogFormat      string `env:"LOG_FORMAT"      envDefault:"json"`
	LogLevel       string `env:"LOG_LEVEL"       envDefault:"info"`
	ConsumerGroup  string `env:"CONSUMER_GROUP"  envDefault:"analytics"`
}

const (
	AnalyticsStoreNoop     = "noop"
	AnalyticsStorePostgres = "postgres"
)

var errPublishingDisabled = errors.New("event publishing is disabled")

// PublisherGroupPackage provides *messaging.PublisherGroup backed by Redis Streams.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		opts := do.MustInvoke[*Options](i)
		if !opts.PublishEvents {
			return nil, errPublishingDisabled
		}

		logger := do.MustInvoke[*zap.Logger](i)

		rdb, err := do.Invoke[*Redis](i)
		if err != nil {
			return nil, err
		}

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client:     rdb.Client,
			Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// AnalyticsStorePackage provides the analytics.Store named by ConsumerConfig.AnalyticsStore.
func AnalyticsStorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		cfg := do.MustInvoke[*ConsumerConfig](i)
		logger := do.MustInvoke[*zap.Logger](i)

		switch cfg.AnalyticsStore {
		case AnalyticsStoreNoop:
			return analyticsstore.NewNoop(logger), nil
		case AnalyticsStorePostgres:
			pg, err := do.Invoke[*Postgres](i)
			if err != nil {
				return nil, err
			}

			return analyticsstore.NewPostgres(pg.Pool), nil
		default:
			return nil, fmt.Errorf("unknown analytics store %q", cfg.AnalyticsStore)
		}
	})
}

// ConsumerGroupPackage provides *messaging.ConsumerGroup with one consumer per analytics topic.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		cfg := do.MustInvoke[*ConsumerConfig](i)
		logger := do.MustInvoke[*zap.Logger](i)

		rdb, err := do.Invoke[*Redis](i)
		if err != nil {
			return nil, err
		}

		eventStore, err := do.Invoke[analytics.Store](i)
		if err != nil {
			return nil, err
		}

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        rdb.Client,
			Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
			ConsumerGroup: cfg.ConsumerGroup,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkCreated,
			analytics.LinkCreatedHandler(eventStore), logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkResolved,
			analytics.LinkResolvedHandler(eventStore), logger))

		return group, nil
	})
}
