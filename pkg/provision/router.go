package provision

import (
	"github.com/gin-gonic/gin"

	"github.com/one-love/onelove/internal/middleware"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := r.Group("/provisions")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("", handler.FindAll)
	tokenAuthenticationRouter.POST("", handler.Create)
	tokenAuthenticationRouter.GET("/:id", handler.FindById)
}
