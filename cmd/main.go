package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/gophkeeper-profile/internal/api/grpc/context"
	"github.com/dtroode/gophkeeper-profile/internal/api/grpc/router"
	grpcServer "github.com/dtroode/gophkeeper-profile/internal/api/grpc/server"
	"github.com/dtroode/gophkeeper-profile/internal/config"
	"github.com/dtroode/gophkeeper-profile/internal/logger"
	"github.com/dtroode/gophkeeper-profile/internal/media"
	"github.com/dtroode/gophkeeper-profile/internal/model"
	"github.com/dtroode/gophkeeper-profile/internal/notify"
	"github.com/dtroode/gophkeeper-profile/internal/permission"
	"github.com/dtroode/gophkeeper-profile/internal/repository/memory"
	"github.com/dtroode/gophkeeper-profile/internal/repository/postgres"
	"github.com/dtroode/gophkeeper-profile/internal/repository/redis"
	"github.com/dtroode/gophkeeper-profile/internal/repository/sqlite"
	"github.com/dtroode/gophkeeper-profile/internal/server"
	"github.com/dtroode/gophkeeper-profile/internal/service"
	storage "github.com/dtroode/gophkeeper-profile/internal/storage/minio"
	"github.com/dtroode/gophkeeper-profile/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const noticeBufferSize = 64

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "driver", cfg.Store.Driver)
	}
	defer closeStore()

	gallery, err := newGallery(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize gallery", "error", err)
	}
	camera := media.NewCamera(cfg.Media.CameraCommand, cfg.Media.CaptureDir)
	policy := permission.NewPolicy(cfg.Permissions.Gallery, cfg.Permissions.Camera)

	recorder := notify.NewRecorder(noticeBufferSize)
	notifiers := notify.Multi{notify.NewLog(logger), recorder}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := notify.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
	}

	profileStore := service.NewProfileStore(kv, notifiers, logger)
	avatar := service.NewAvatar(policy, gallery, camera, notifiers, logger)
	session := service.NewSession(profileStore, avatar, notifiers, logger)
	session.Mount(ctx)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	tokenService := service.NewTokenService(tokenManager, logger)
	if err := tokenService.IssueToFile(service.LocalSubject, cfg.JWT.TokenFile); err != nil {
		logger.Fatal("failed to issue control API token", "error", err)
	}

	r := router.New(session, recorder, policy, tokenService, grpcctx.NewManager(), logger)
	s := r.Register()
	reflection.Register(s)
	srv := grpcServer.NewGRPCServer(s, cfg.GRPC.Address)

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// openStore opens the key-value backend named by cfg.Store.Driver and
// returns a function releasing it.
func openStore(ctx context.Context, cfg *config.Config) (model.KeyValueStore, func(), error) {
	switch cfg.Store.Driver {
	case "sqlite":
		st, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, closer(st), nil
	case "postgres":
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewKVRepository(db), closer(db), nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return redis.NewStore(client, cfg.Redis.Prefix), closer(client), nil
	case "memory":
		return memory.NewStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func closer(c io.Closer) func() {
	return func() { _ = c.Close() }
}

// newGallery returns the bucket gallery when object storage is enabled and
// the directory gallery otherwise.
func newGallery(ctx context.Context, cfg *config.Config) (model.MediaSurface, error) {
	if !cfg.Storage.Enabled {
		return media.NewDirGallery(cfg.Media.GalleryDir)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}
	return media.NewObjectGallery(storageClient), nil
}
