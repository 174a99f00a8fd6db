package api

import (
	"go-order-pipeline/internal/api/handler"
	"go-order-pipeline/internal/metrics"
	"go-order-pipeline/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"
)

func RegisterRoutes(r *router.Router, h *handler.Handler, reg *metrics.Registry) {
	r.POST("/api/v1/shipments", h.CreateShipments)
	r.POST("/api/v1/management", h.CreateManagement)
	r.POST("/api/v1/paste", h.AggregatePaste)
	r.POST("/api/v1/carrier/annotate", h.AnnotateCarrier)
	r.GET("/api/v1/runs", h.ListRuns)
	r.GET("/api/v1/runs/*", h.GetRun)
	r.GET("/api/v1/download/*/*", h.DownloadFile)

	r.Mount("/metrics", reg.Handler())
	r.Mount("/swagger/", httpSwagger.WrapHandler)
}
