package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"swipe-go/internal/auth"
	"swipe-go/internal/config"
	"swipe-go/internal/db"
	announcementsdomain "swipe-go/internal/domain/announcements"
	favouritesdomain "swipe-go/internal/domain/favourites"
	housesdomain "swipe-go/internal/domain/houses"
	identitydomain "swipe-go/internal/domain/identity"
	"swipe-go/internal/domain/media"
	"swipe-go/internal/messaging/rabbitmq"
	"swipe-go/internal/observability/tracing"
	"swipe-go/internal/repository/inmemory"
	announcementsrepo "swipe-go/internal/repository/postgres/announcements"
	favouritesrepo "swipe-go/internal/repository/postgres/favourites"
	housesrepo "swipe-go/internal/repository/postgres/houses"
	identityrepo "swipe-go/internal/repository/postgres/identity"
	redisrepo "swipe-go/internal/repository/redis"
	"swipe-go/internal/storage/filesystem"
	"swipe-go/internal/transport/httpserver"
	"swipe-go/internal/transport/httpserver/handler"
	authmw "swipe-go/internal/transport/httpserver/middleware"
	"swipe-go/pkg/logger"
)

type App struct {
	cfg            config.Config
	httpServer     *http.Server
	db             *gorm.DB
	redis          *goredis.Client
	publisher      *rabbitmq.Publisher
	shutdownTracer func(context.Context) error
	log            logger.Logger
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}
	if err := a.init(ctx); err != nil {
		if closeErr := a.Close(); closeErr != nil {
			log.Error("app: cleanup after failed init", "err", closeErr)
		}
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	log := a.log

	log.Info("app: initializing tracing")
	shutdown, err := tracing.Init(ctx, a.cfg.Tracing, a.cfg.Env, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	a.shutdownTracer = shutdown

	log.Info("app: initializing database")
	a.db, err = db.NewPostgres(a.cfg.DB, log)
	if err != nil {
		return err
	}
	if a.cfg.DB.AutoMigrate {
		if err := db.Migrate(a.db, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	log.Info("app: initializing media storage", "root", a.cfg.Media.Root)
	store, err := filesystem.New(a.cfg.Media.Root, a.cfg.Media.URL)
	if err != nil {
		return fmt.Errorf("media storage: %w", err)
	}
	library := media.NewLibrary(store, log)

	identityService := NewIdentityService(a.db)
	if a.cfg.Cache.RedisAddr != "" {
		log.Info("app: connecting to redis", "addr", a.cfg.Cache.RedisAddr)
		a.redis, err = redisrepo.NewClient(ctx, a.cfg.Cache.RedisAddr, a.cfg.Cache.RedisPassword, a.cfg.Cache.RedisDB)
		if err != nil {
			return err
		}
		identityService.WithCache(redisrepo.NewPrincipalCache(a.redis, log), a.cfg.Cache.PrincipalTTL)
	} else {
		identityService.WithCache(inmemory.NewPrincipalCache(), a.cfg.Cache.PrincipalTTL)
	}

	announcementService := announcementsdomain.NewService(announcementsrepo.NewPostgres(a.db), library, log)
	if a.cfg.Events.AMQPURL != "" {
		log.Info("app: connecting to rabbitmq", "exchange", a.cfg.Events.Exchange)
		a.publisher, err = rabbitmq.NewPublisher(a.cfg.Events.AMQPURL, a.cfg.Events.Exchange, log)
		if err != nil {
			return err
		}
		announcementService.WithPublisher(a.publisher)
	}

	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}

	tokens := auth.NewTokens(a.cfg.Auth.Secret, a.cfg.Auth.Issuer, a.cfg.Auth.TokenTTL)
	handlers := handler.New(handler.Deps{
		Identity:               identityService,
		Houses:                 housesdomain.NewService(housesrepo.NewPostgres(a.db), library),
		Announcements:          announcementService,
		AnnouncementFavourites: favouritesdomain.NewRegistry[announcementsdomain.Announcement](favouritesrepo.NewAnnouncementStore(a.db)),
		HouseFavourites:        favouritesdomain.NewRegistry[housesdomain.House](favouritesrepo.NewHouseStore(a.db)),
		Tokens:                 tokens,
		Media:                  library,
		DB:                     sqlDB,
	}, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(a.cfg, handlers, authmw.NewTokenAuth(tokens, identityService, log), log)
	a.httpServer = httpserver.New(a.cfg, router)
	return nil
}

// NewIdentityService builds the account service on top of db with the
// default bcrypt cost.
func NewIdentityService(gormDB *gorm.DB) *identitydomain.Service {
	return identitydomain.NewService(identityrepo.NewPostgres(gormDB), auth.NewBcryptHasher(0))
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.shutdownTracer != nil {
		errs = append(errs, a.shutdownTracer(context.Background()))
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
