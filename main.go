package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payroll-directory/internal/config"
	"payroll-directory/internal/database"
	"payroll-directory/internal/logger"
	"payroll-directory/internal/repository"
	"payroll-directory/internal/router"
	"payroll-directory/internal/util"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	// load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, employees, closeStore, err := openStores(ctx, cfg.Database)
	if err != nil {
		zlog.Fatal("open store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer closeStore()

	tokens := util.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.TokenTTL())

	r := router.SetupRouter(router.Deps{
		Config:    cfg,
		Log:       zlog,
		Users:     users,
		Employees: employees,
		Tokens:    tokens,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           corsHandler.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	for _, route := range r.Routes() {
		zlog.Info("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr), zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("run server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}

// openStores connects the configured backend and returns its repositories
// together with a function that releases the connection.
func openStores(ctx context.Context, cfg config.DatabaseConfig) (repository.UserRepository, repository.EmployeeRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return repository.NewMongoUserRepository(db), repository.NewMongoEmployeeRepository(db), closeFn, nil

	default:
		db, err := database.Init(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, nil, err
		}
		closeFn := func() { _ = database.Close(db) }
		return repository.NewGormUserRepository(db), repository.NewGormEmployeeRepository(db), closeFn, nil
	}
}
