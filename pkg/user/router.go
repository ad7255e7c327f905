package user

import (
	"github.com/one-love/onelove/internal/middleware"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	r.POST("/users/register", handler.Register)
	r.GET("/users/confirm/:token", handler.Confirm)
	r.POST("/refresh", handler.RefreshToken)

	basicAuthenticationRouter := r.Group("")
	basicAuthenticationRouter.Use(authenticationMiddleware.BasicAuthentication)
	basicAuthenticationRouter.POST("/tokens", handler.SignIn)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/me", handler.Me)
	tokenAuthenticationRouter.DELETE("/tokens", handler.SignOut)
	tokenAuthenticationRouter.GET("/users", handler.FindAll)
	tokenAuthenticationRouter.GET("/users/:id", handler.FindById)
	tokenAuthenticationRouter.PATCH("/users/:id", handler.Update)
	tokenAuthenticationRouter.DELETE("/users/:id", handler.Delete)
}
