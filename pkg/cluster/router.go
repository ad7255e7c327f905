package cluster

import (
	"github.com/gin-gonic/gin"

	"github.com/one-love/onelove/internal/middleware"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := r.Group("/clusters")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("", handler.FindAll)
	tokenAuthenticationRouter.POST("", handler.Create)
	tokenAuthenticationRouter.GET("/:id", handler.Find)
	tokenAuthenticationRouter.PATCH("/:id", handler.Update)
	tokenAuthenticationRouter.DELETE("/:id", handler.Delete)

	tokenAuthenticationRouter.GET("/:id/services", handler.ListServices)
	tokenAuthenticationRouter.POST("/:id/services", handler.AttachService)
	tokenAuthenticationRouter.DELETE("/:id/services/:serviceId", handler.DetachService)

	tokenAuthenticationRouter.GET("/:id/providers", handler.ListProviders)
	tokenAuthenticationRouter.POST("/:id/providers", handler.CreateProvider)
	tokenAuthenticationRouter.DELETE("/:id/providers/:name", handler.DeleteProvider)

	tokenAuthenticationRouter.GET("/:id/providers/:name/hosts", handler.ListHosts)
	tokenAuthenticationRouter.POST("/:id/providers/:name/hosts", handler.CreateHost)
	tokenAuthenticationRouter.GET("/:id/providers/:name/hosts/:hostname", handler.GetHost)
	tokenAuthenticationRouter.PATCH("/:id/providers/:name/hosts/:hostname", handler.UpdateHost)
	tokenAuthenticationRouter.DELETE("/:id/providers/:name/hosts/:hostname", handler.DeleteHost)
}
