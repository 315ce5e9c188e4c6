package bootstrap

import (
	"context"

	"content-platform-be/internal/config"
	"content-platform-be/internal/controller"
	"content-platform-be/internal/handler"
	"content-platform-be/internal/pkg/logger"
	"content-platform-be/internal/repository/contract"
	"content-platform-be/internal/repository/implementation"
	"content-platform-be/internal/repository/memory"
	"content-platform-be/internal/repository/unitofwork"
	"content-platform-be/internal/service"
	"content-platform-be/internal/websocket"
	"content-platform-be/pkg/events"
	"content-platform-be/pkg/upload"

	pktNats "content-platform-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ContentController controller.IContentController
	UploadController  controller.IUploadController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	ContentService  service.IContentService

	// WebSockets & live preview
	PreviewHandler *handler.PreviewHandler
	WebSocketHub   *websocket.Hub

	Logger logger.ILogger

	pubSub      *gochannel.GoChannel
	natsPub     *pktNats.Publisher
	rdb         *redis.Client
	indexLogger logger.ILogger
	stopHub     context.CancelFunc
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	indexLogger := logger.NewIsolatedLogger(cfg.Index.LogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)

	// 3. Infrastructure (optional; the service runs without NATS and Redis)
	var natsPub *pktNats.Publisher
	var eventPublisher events.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger.Zap())
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			natsPub = pub
			eventPublisher = pub
		}
	}

	rdb := connectRedis(cfg.App.RedisURL, sysLogger)

	var drafts contract.DraftRepository
	if rdb != nil {
		drafts = implementation.NewRedisDraftRepository(rdb)
	} else {
		drafts = memory.NewDraftRepository(cfg.Cache.DraftTTL)
		sysLogger.Info("Bootstrap", "Drafts kept in process memory", nil)
	}

	// WebSocket Hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run(hubCtx)

	uploader := upload.NewLocalStore(
		cfg.Upload.Dir,
		cfg.Upload.BaseURL,
		upload.WithMaxSize(int64(cfg.Upload.MaxBytes)),
		upload.WithStoreLogger(sysLogger.Zap()),
	)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Index.TopicName, pubSub)

	var indexEvents events.Publisher
	if cfg.Index.PublishNats {
		indexEvents = eventPublisher
	}
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Index.TopicName,
		uowFactory,
		indexEvents,
		indexLogger,
	)

	contentOpts := []service.ContentServiceOption{service.WithBroadcaster(wsHub)}
	if eventPublisher != nil {
		contentOpts = append(contentOpts, service.WithEventPublisher(eventPublisher))
	}
	contentService := service.NewContentService(
		uowFactory,
		publisherService,
		cfg.Cache.DescriptorTTL,
		sysLogger,
		contentOpts...,
	)
	draftService := service.NewDraftService(uowFactory, drafts, cfg.Cache.DraftTTL, wsHub, sysLogger)
	uploadService := service.NewUploadService(uploader, sysLogger)

	// 5. Controllers
	return &Container{
		ContentController: controller.NewContentController(contentService, draftService),
		UploadController:  controller.NewUploadController(uploadService),
		ConsumerService:   consumerService,
		ContentService:    contentService,
		PreviewHandler:    handler.NewPreviewHandler(wsHub, sysLogger),
		WebSocketHub:      wsHub,
		Logger:            sysLogger,

		pubSub:      pubSub,
		natsPub:     natsPub,
		rdb:         rdb,
		indexLogger: indexLogger,
		stopHub:     stopHub,
	}
}

// connectRedis returns nil when no URL is configured or the server does not
// answer, so callers fall back to in-process storage.
func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// Close releases background resources in reverse start order.
func (c *Container) Close() error {
	c.stopHub()

	var err error
	err = multierr.Append(err, c.pubSub.Close())
	if c.natsPub != nil {
		err = multierr.Append(err, c.natsPub.Close())
	}
	if c.rdb != nil {
		err = multierr.Append(err, c.rdb.Close())
	}
	// Sync on a console core reports EINVAL on some platforms; only the
	// file-only index logger is checked.
	_ = c.Logger.Sync()
	err = multierr.Append(err, c.indexLogger.Sync())
	return err
}
