// Package http wires the HTTP surface: route registration, request
// binding rules, and the middleware chain.
package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maida-inc/maida/internal/interfaces/http/handlers"
	"github.com/maida-inc/maida/internal/interfaces/http/middleware"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type Router struct {
	engine              *gin.Engine
	pricingHandler      *handlers.PricingHandler
	subscriptionHandler *handlers.SubscriptionHandler
	deliveryHandler     *handlers.DeliveryHandler
	healthHandler       *handlers.HealthHandler
}

func NewRouter(
	pricingHandler *handlers.PricingHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	deliveryHandler *handlers.DeliveryHandler,
	db *gorm.DB,
	log logger.Interface,
) *Router {
	engine := gin.New()
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.Logger(log))

	handlers.RegisterValidations()

	return &Router{
		engine:              engine,
		pricingHandler:      pricingHandler,
		subscriptionHandler: subscriptionHandler,
		deliveryHandler:     deliveryHandler,
		healthHandler:       handlers.NewHealthHandler(db),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/health", r.healthHandler.Health)

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/plans", r.pricingHandler.ListPlans)
		v1.POST("/pricing/quote", r.pricingHandler.QuotePrice)

		subs := v1.Group("/subscriptions")
		{
			subs.POST("", r.subscriptionHandler.CreateSubscription)
			subs.GET("", r.subscriptionHandler.ListSubscriptions)
			subs.GET("/:sid", r.subscriptionHandler.GetSubscription)
			subs.POST("/:sid/pause", r.subscriptionHandler.PauseSubscription)
			subs.POST("/:sid/resume", r.subscriptionHandler.ResumeSubscription)
			subs.POST("/:sid/cancel", r.subscriptionHandler.CancelSubscription)
			subs.PUT("/:sid/delivery-days", r.deliveryHandler.RebuildSchedule)
			subs.GET("/:sid/deliveries", r.deliveryHandler.ListDeliveries)
		}

		deliveries := v1.Group("/deliveries")
		{
			deliveries.POST("/:sid/skip", r.deliveryHandler.SkipDelivery)
			deliveries.POST("/:sid/delivered", r.deliveryHandler.MarkDelivered)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
