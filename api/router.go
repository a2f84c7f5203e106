// api/router.go
package api

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Annany2002/collecta-backend/api/handlers"
	"github.com/Annany2002/collecta-backend/api/middleware"
	"github.com/Annany2002/collecta-backend/config"
	"github.com/Annany2002/collecta-backend/internal/media"
	"github.com/Annany2002/collecta-backend/internal/service"
)

var bindingOnce sync.Once

// useJSONFieldNames makes gin binding errors name fields as they appear in the body.
func useJSONFieldNames() {
	bindingOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(service.JSONFieldName)
		}
	})
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 0 || slices.Contains(cfg.CORSAllowedOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return corsCfg
}

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(svc *service.Service, cfg *config.Config, limiter middleware.Limiter) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes + 1<<20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.RateLimitMiddleware(limiter))
	// ErrorHandler wraps every handler below it, including AuthMiddleware.
	router.Use(middleware.ErrorHandler())

	authHandler := handlers.NewAuthHandler(svc, cfg)
	collectionHandler := handlers.NewCollectionHandler(svc, cfg)
	itemHandler := handlers.NewItemHandler(svc, cfg)
	eventHandler := handlers.NewEventHandler(svc, cfg)

	// --- Public Routes ---
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true, "message": "pong"}) })
	if cfg.MediaBackend == config.MediaLocal {
		router.Static("/"+media.URLPrefix, cfg.UploadsDir)
	}
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// --- Protected Routes ---
	apiRoutes := router.Group("/api/v1")
	apiRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		apiRoutes.GET("/me", authHandler.Me)
		apiRoutes.PUT("/me", authHandler.UpdateMe)
		apiRoutes.PUT("/me/picture", authHandler.UpdatePicture)

		apiRoutes.GET("/collections", collectionHandler.ListCollections)
		apiRoutes.POST("/collections", collectionHandler.CreateCollection)
		apiRoutes.GET("/collections/:id", collectionHandler.GetCollection)
		apiRoutes.PUT("/collections/:id", collectionHandler.UpdateCollection)
		apiRoutes.DELETE("/collections/:id", collectionHandler.DeleteCollection)
		apiRoutes.PUT("/collections/:id/image", collectionHandler.UploadImage)

		apiRoutes.GET("/collections/:id/items", itemHandler.ListItems)
		apiRoutes.POST("/collections/:id/items", itemHandler.CreateItem)
		apiRoutes.GET("/items/:id", itemHandler.GetItem)
		apiRoutes.PUT("/items/:id", itemHandler.UpdateItem)
		apiRoutes.DELETE("/items/:id", itemHandler.DeleteItem)
		apiRoutes.PUT("/items/:id/rating", itemHandler.RateItem)
		apiRoutes.PUT("/items/:id/image", itemHandler.UploadImage)

		apiRoutes.GET("/collections/:id/events", eventHandler.ListEvents)
		apiRoutes.POST("/collections/:id/events", eventHandler.CreateEvent)
		apiRoutes.GET("/events/:id", eventHandler.GetEvent)
		apiRoutes.PUT("/events/:id", eventHandler.UpdateEvent)
		apiRoutes.DELETE("/events/:id", eventHandler.DeleteEvent)
		apiRoutes.PUT("/events/:id/rating", eventHandler.RateEvent)
		apiRoutes.PUT("/events/:id/image", eventHandler.UploadImage)
	}

	return router
}
