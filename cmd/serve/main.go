// Package classification One Love Cluster Manager.
//
// REST API managing clusters, the services deployed onto them and their
// provisioning runs
//
//	Version: 0.1.0
//
//	Consumes:
//	  - application/json
//
//	Produces:
//	  - application/json
//
//	SecurityDefinitions:
//	  oauth2:
//	    type: oauth2
//	    tokenUrl: /tokens
//	    refreshUrl: /refresh
//	    flow: password
//
// swagger:meta
package main

import (
	"log"
	"log/slog"
	"os"

	customLog "github.com/one-love/onelove/internal/log"
	"github.com/one-love/onelove/internal/middleware"
	"github.com/one-love/onelove/internal/server"
	"github.com/one-love/onelove/pkg/cluster"
	"github.com/one-love/onelove/pkg/config"
	"github.com/one-love/onelove/pkg/provision"
	"github.com/one-love/onelove/pkg/rabbitmq"
	"github.com/one-love/onelove/pkg/service"
	"github.com/one-love/onelove/pkg/storage"
	"github.com/one-love/onelove/pkg/token"
	"github.com/one-love/onelove/pkg/user"

	"github.com/go-mail/mail"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.New()

	logger := newLogger(cfg.Environment)
	slog.SetDefault(logger)

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	redisClient, err := storage.NewRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password)
	if err != nil {
		return err
	}

	amqpClient, err := rabbitmq.NewClient(cfg.RabbitMq.GetUrl())
	if err != nil {
		return err
	}
	defer amqpClient.Close()

	privateKey, err := cfg.Authentication.GetPrivateKey()
	if err != nil {
		return err
	}

	tokenRepository := token.NewRepository(redisClient)
	tokenService := token.NewService(
		logger,
		tokenRepository,
		privateKey,
		cfg.Authentication.AccessTokenExpirationSeconds,
		cfg.Authentication.RefreshTokenSecretKey,
		cfg.Authentication.RefreshTokenExpirationSeconds,
	)

	dialer := mail.NewDialer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password)
	userRepository := user.NewRepository(db)
	userService := user.NewService(cfg.UIUrl, userRepository, dialer)
	userHandler := user.NewHandler(userService, tokenService)

	serviceRepository := service.NewRepository(db)
	serviceService := service.NewService(serviceRepository)
	serviceHandler := service.NewHandler(serviceService)

	clusterRepository := cluster.NewRepository(db)
	clusterService := cluster.NewService(clusterRepository, serviceService)
	clusterHandler := cluster.NewHandler(clusterService)

	provisionRepository := provision.NewRepository(db)
	provisionService := provision.NewService(provisionRepository, clusterService, serviceService, amqpClient)
	provisionHandler := provision.NewHandler(provisionService)

	logConsumer := provision.NewLogConsumer(logger, amqpClient, provisionRepository)
	err = logConsumer.Consume()
	if err != nil {
		return err
	}

	authenticationMiddleware := middleware.NewAuthentication(&privateKey.PublicKey, userService)

	r := server.GetEngine(logger, cfg.BasePath, authenticationMiddleware, userHandler, clusterHandler, serviceHandler, provisionHandler)
	return r.Run()
}

func newLogger(environment string) *slog.Logger {
	if environment == "development" {
		opts := &customLog.PrettyJSONHandlerOptions{PrettyPrint: true}
		return slog.New(customLog.New(customLog.NewPrettyJSONHandler(os.Stdout, opts)))
	}
	return slog.New(customLog.New(slog.NewJSONHandler(os.Stdout, nil)))
}
