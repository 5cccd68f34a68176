package bootstrap

import (
	"context"
	"fmt"
	"time"

	"rfp-console/internal/blob"
	"rfp-console/internal/config"
	"rfp-console/internal/controller"
	"rfp-console/internal/handler"
	"rfp-console/internal/module"
	"rfp-console/internal/module/assignments"
	"rfp-console/internal/module/auth"
	"rfp-console/internal/module/documents"
	"rfp-console/internal/module/keystone"
	"rfp-console/internal/module/library"
	"rfp-console/internal/module/preferences"
	"rfp-console/internal/module/questions"
	"rfp-console/internal/module/recyclebin"
	"rfp-console/internal/module/reviewers"
	"rfp-console/internal/module/team"
	"rfp-console/internal/module/users"
	"rfp-console/internal/pkg/logger"
	"rfp-console/internal/repository/contract"
	"rfp-console/internal/repository/implementation"
	"rfp-console/internal/repository/memory"
	"rfp-console/internal/session"
	"rfp-console/internal/toast"
	"rfp-console/internal/websocket"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/database"
	pktNats "rfp-console/pkg/nats"
	"rfp-console/pkg/store"
	"rfp-console/pkg/workflow"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Modules holds every workflow module so controllers and tests can reach
// their selectors.
type Modules struct {
	Auth        *auth.Module
	Documents   *documents.Module
	Questions   *questions.Module
	Assignments *assignments.Module
	Users       *users.Module
	Library     *library.Module
	RecycleBin  *recyclebin.Module
	Reviewers   *reviewers.Module
	Team        *team.Module
	Keystone    *keystone.Module
	Preferences *preferences.Module
}

func (m Modules) all() []workflow.Module {
	return []workflow.Module{
		m.Auth, m.Documents, m.Questions, m.Assignments, m.Users, m.Library,
		m.RecycleBin, m.Reviewers, m.Team, m.Keystone, m.Preferences,
	}
}

type Container struct {
	Config *config.Config
	Logger logger.ILogger

	// Infrastructure
	KV       contract.KVRepository
	Sessions *session.Manager
	API      *apiclient.Client
	Toasts   *toast.Center
	Blobs    *blob.Registry

	// Optional cross-process session sync, nil without NATS_URL.
	SessionBridge *session.Bridge

	// Orchestration
	Coordinator *workflow.Coordinator
	Modules     Modules

	// Local bridge
	IntentController controller.IIntentController
	StateController  controller.IStateController
	ToastController  controller.IToastController
	BlobController   controller.IBlobController
	StreamHandler    *handler.StreamHandler
	WebSocketHub     *websocket.Hub

	closers []func()
}

// Options overrides infrastructure that tests replace.
type Options struct {
	Logger    logger.ILogger
	HubLogger logger.ILogger
	KV        contract.KVRepository
}

func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(cfg, Options{})
}

func NewContainerWithOptions(cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{Config: cfg}

	// 1. Core Facades
	c.Logger = opts.Logger
	if c.Logger == nil {
		c.Logger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}

	// 2. Storage
	var rdb *redis.Client
	if cfg.Store.KVDriver == "redis" || cfg.Store.RedisURL != "" {
		rdb = c.connectRedis(cfg.Store.RedisURL)
	}

	c.KV = opts.KV
	if c.KV == nil {
		kv, err := c.openKV(cfg.Store, rdb)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.KV = kv
	}

	// 3. Session
	sealer, err := session.NewSealer(cfg.Store.SessionSecret)
	if err != nil {
		c.Close()
		return nil, err
	}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	c.closers = append(c.closers, func() { _ = pubSub.Close() })
	c.Sessions = session.NewManager(c.KV, sealer, pubSub, c.Logger)

	if cfg.Store.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Store.NatsURL)
		if err != nil {
			c.Logger.Warn("Bootstrap", "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
		}
		natsSub, err := pktNats.NewSubscriber(cfg.Store.NatsURL)
		if err != nil {
			c.Logger.Warn("Bootstrap", "Failed to connect to NATS subscriber", map[string]interface{}{"error": err.Error()})
		}
		if natsPub != nil && natsSub != nil {
			c.SessionBridge = session.NewBridge(c.Sessions, natsPub, natsSub, c.Logger)
			c.closers = append(c.closers, natsPub.Close, natsSub.Close)
		} else {
			if natsPub != nil {
				natsPub.Close()
			}
			if natsSub != nil {
				natsSub.Close()
			}
		}
	}

	// 4. Services
	c.API = apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, c.Sessions, cfg.API.BypassNgrok)
	c.Toasts = toast.NewCenter(cfg.UI.ToastTTL)
	c.Blobs = blob.NewRegistry(cfg.UI.BlobTTL)
	c.Coordinator = workflow.NewCoordinator(store.NewTree(), c.Logger)

	deps := &module.Deps{
		API:        c.API,
		Sessions:   c.Sessions,
		KV:         c.KV,
		Blobs:      c.Blobs,
		Runtime:    &workflow.Runtime{Sessions: c.Sessions, Notifier: c.Toasts, Logger: c.Logger},
		Dispatcher: c.Coordinator,
		Logger:     c.Logger,
		UploadTick: cfg.UI.UploadTick,
		BlobTTL:    cfg.UI.BlobTTL,
	}

	// 5. Modules
	c.Modules = Modules{
		Auth:        auth.New(deps),
		Documents:   documents.New(deps),
		Questions:   questions.New(deps),
		Assignments: assignments.New(deps),
		Users:       users.New(deps),
		Library:     library.New(deps),
		RecycleBin:  recyclebin.New(deps),
		Reviewers:   reviewers.New(deps),
		Team:        team.New(deps),
		Keystone:    keystone.New(deps),
		Preferences: preferences.New(deps),
	}
	if err := c.Coordinator.Register(c.Modules.all()...); err != nil {
		c.Close()
		return nil, fmt.Errorf("register modules: %w", err)
	}

	// 6. WebSockets
	hubLogger := opts.HubLogger
	if hubLogger == nil {
		hubLogger = logger.NewIsolatedLogger(cfg.App.HubLogFilePath)
	}
	c.WebSocketHub = websocket.NewHub(rdb, hubLogger)
	c.Coordinator.Tree().Watch(func(name string, version uint64) {
		snapshot, _ := c.Coordinator.Tree().Get(name)
		c.WebSocketHub.Publish(websocket.Message{Type: websocket.TypeState, Slice: name, Version: version, Data: snapshot})
	})
	c.Toasts.Listen(func(t toast.Toast) {
		c.WebSocketHub.Publish(websocket.Message{Type: websocket.TypeToast, Data: t})
	})

	// 7. Controllers
	c.IntentController = controller.NewIntentController(c.Coordinator, c.Logger)
	c.StateController = controller.NewStateController(c.Coordinator.Tree(), controller.Views{
		Documents: c.Modules.Documents.State,
		Questions: c.Modules.Questions.State,
	})
	c.ToastController = controller.NewToastController(c.Toasts)
	c.BlobController = controller.NewBlobController(c.Blobs)
	c.StreamHandler = handler.NewStreamHandler(c.WebSocketHub, c.Coordinator.Tree(), hubLogger)

	return c, nil
}

func (c *Container) connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		c.Logger.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return rdb
}

func (c *Container) openKV(cfg config.StoreConfig, rdb *redis.Client) (contract.KVRepository, error) {
	switch cfg.KVDriver {
	case "", "memory":
		return memory.NewKVRepository(), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("kv driver redis: no connection to %s", cfg.RedisURL)
		}
		return implementation.NewRedisKVRepository(rdb), nil
	case "sqlite", "postgres":
		db, err := database.Open(cfg.KVDriver, cfg.KVDSN, !c.Config.IsProduction())
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { closeDB(db) })
		return implementation.NewGormKVRepository(db)
	default:
		return nil, fmt.Errorf("unsupported kv driver: %s", cfg.KVDriver)
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
