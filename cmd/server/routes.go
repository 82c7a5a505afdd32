package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"logichain.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	contractHandler  *handlers.ContractHandler
	activityHandler  *handlers.ActivityHandler
	kpiHandler       *handlers.KPIHandler
	assistantHandler *handlers.AssistantHandler
	documentHandler  *handlers.DocumentHandler
	exportHandler    *handlers.ExportHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		contracts := v1.Group("/contracts")
		{
			contracts.POST("", d.contractHandler.CreateContract)
			contracts.GET("", d.contractHandler.ListContracts)
			contracts.GET("/export", d.exportHandler.ExportContracts)
			contracts.GET("/kanban", d.contractHandler.Kanban)
			contracts.GET("/next-number", d.contractHandler.NextNumber)
			contracts.GET("/number/:number", d.contractHandler.GetContractByNumber)

			contracts.GET("/:id", d.contractHandler.GetContract)
			contracts.PATCH("/:id", d.contractHandler.EditContract)
			contracts.PATCH("/:id/status", d.contractHandler.UpdateStatus)
			contracts.PATCH("/:id/activity", d.activityHandler.UpdateActivity)
			contracts.PUT("/:id/compliance", d.activityHandler.UpsertCompliance)
			contracts.PUT("/:id/supplier-performance", d.activityHandler.UpsertSupplierPerformance)
			contracts.POST("/:id/additives", d.contractHandler.AddAdditive)
			contracts.GET("/:id/additives", d.contractHandler.ListAdditives)
			contracts.GET("/:id/events", d.contractHandler.ListEvents)
			contracts.POST("/:id/document", d.documentHandler.Generate)
			contracts.GET("/:id/document", d.documentHandler.Download)
		}

		v1.GET("/kpis", d.kpiHandler.GetKPIs)

		assistant := v1.Group("/assistant")
		{
			assistant.POST("/ask", d.assistantHandler.Ask)
			assistant.GET("/history/:sessionId", d.assistantHandler.History)
			assistant.DELETE("/history/:sessionId", d.assistantHandler.ClearHistory)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
