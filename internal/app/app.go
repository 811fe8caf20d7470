package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/controller"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository/postgres"
	redisrepo "github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository/redis"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/service/room"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/service/user"
	"github.com/Sivakumarraj/Music-Mesh-Studio/pkg/ctxlogger"
	"github.com/Sivakumarraj/Music-Mesh-Studio/pkg/redisclient"
)

type AppConfig struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	LogLevel      string `json:"log_level"`
	StoreBackend  string `json:"store_backend"`
	PostgresURL   string `json:"-"`
	RedisHost     string `json:"redis_host"`
	RedisPort     int    `json:"redis_port"`
	RedisPassword string `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	switch cfg.StoreBackend {
	case "postgres":
		if cfg.PostgresURL == "" {
			return fmt.Errorf("postgres backend requires a database URL")
		}
	case "redis":
	default:
		return fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	return nil
}

// entityStore is the union of what the services need from a backend.
type entityStore interface {
	GetUser(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	CreateUser(ctx context.Context, params *repository.CreateUserParams) (domain.User, error)

	GetRoom(ctx context.Context, id int64) (domain.Room, error)
	CreateRoomWithCreator(ctx context.Context, params *repository.CreateRoomParams) (domain.Room, domain.RoomParticipant, error)
	ListPublicRooms(ctx context.Context) ([]domain.Room, error)
	ListRoomsByCreator(ctx context.Context, creatorId int64) ([]domain.Room, error)

	ListLoopsForRoom(ctx context.Context, roomId int64) ([]domain.LoopWithUser, error)
	CreateLoop(ctx context.Context, params *repository.CreateLoopParams) (domain.Loop, error)
	UpdateLoop(ctx context.Context, params *repository.UpdateLoopParams) (domain.Loop, error)
	DeleteLoop(ctx context.Context, id int64) (bool, error)

	UpsertParticipant(ctx context.Context, roomId, userId int64) (domain.RoomParticipant, error)
	RemoveParticipant(ctx context.Context, roomId, userId int64) (bool, error)
	TouchParticipant(ctx context.Context, roomId, userId int64) error
	ListParticipants(ctx context.Context, roomId int64) ([]domain.ParticipantWithUser, error)
}

func newStore(ctx context.Context, cfg *AppConfig) (entityStore, func(), error) {
	switch cfg.StoreBackend {
	case "postgres":
		repo, err := postgres.NewRepo(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("creating postgres store: %w", err)
		}
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, nil, fmt.Errorf("migrating schema: %w", err)
		}
		return repo, repo.Close, nil
	case "redis":
		rc, err := redisclient.NewRedisClient(ctx, &redisclient.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("creating redis client: %w", err)
		}
		return redisrepo.NewRepo(rc), func() { rc.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}),
	}
	logger := slog.New(h)

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	userService := user.NewService(store, logger)
	roomService := room.NewService(store, logger)
	ctrl := controller.NewController(userService, roomService, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: ctrl.Mux(),
	}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr, "store", cfg.StoreBackend)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
