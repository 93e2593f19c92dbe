// Package graph is the REST and websocket front end of the garden service.
package graph

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolver serves the garden over HTTP.
type Resolver struct {
	version    string
	controller Controller
}

func NewResolver(version string, controller Controller) *Resolver {
	return &Resolver{
		controller: controller,
		version:    version,
	}
}

// Router returns a gin engine with every route registered.
func (r *Resolver) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), cors.Default())
	r.Register(router)
	return router
}

func (r *Resolver) Register(router gin.IRouter) {
	router.GET("/health", r.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.controller.Registry(), promhttp.HandlerOpts{})))

	plants := router.Group("/plants")
	plants.GET("", r.plants)
	plants.POST("", r.createPlant)
	plants.GET("/:id", r.plant)
	plants.POST("/:id/water", r.waterPlant)

	router.POST("/refresh", r.refresh)
	router.GET("/surfaces", r.surfaces)
	router.GET("/surfaces/ws", r.surfaceSocket)
	router.POST("/fake/button", r.pressButton)
}
