package server

import (
	"log/slog"

	"github.com/one-love/onelove/internal/middleware"
	"github.com/one-love/onelove/pkg/cluster"
	"github.com/one-love/onelove/pkg/health"
	"github.com/one-love/onelove/pkg/provision"
	"github.com/one-love/onelove/pkg/service"
	"github.com/one-love/onelove/pkg/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// GetEngine assembles the HTTP engine with the shared middleware chain and the
// routes of every resource package.
func GetEngine(logger *slog.Logger, basePath string, authenticationMiddleware middleware.AuthenticationMiddleware, userHandler user.Handler, clusterHandler cluster.Handler, serviceHandler service.Handler, provisionHandler provision.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	router.GET("/health", health.Health)

	user.Routes(router, authenticationMiddleware, userHandler)
	cluster.Routes(router, authenticationMiddleware, clusterHandler)
	service.Routes(router, authenticationMiddleware, serviceHandler)
	provision.Routes(router, authenticationMiddleware, provisionHandler)

	return r
}
