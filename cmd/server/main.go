// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// *****************************************************************************************************//
// Package main is the entry point for the script timeline parser server.
//
// This application sets up and runs a web server using the Gin framework. It
// provides a REST API that converts free-form screenplay or narration text
// into a structured Timeline of cues for downstream audio and video
// synthesis. The server is instrumented with OpenTelemetry for logging,
// tracing, and metrics.
//
// The main function initializes the application's configuration, sets up
// logging and telemetry, and initializes the application state, including the
// rate-limited parser service. It defines API routes for parsing scripts and
// retrieving service statistics, and handles graceful shutdown.
//
// Functions:
//   - main: The main entry point of the application. It sets up the server,
//     configures routes, initializes services, and handles graceful shutdown.
//   - TimelineRouter: Sets up the API routes for parsing scripts into
//     timelines, individually and in batch.
//   - Dashboard: Sets up the statistics endpoint exposing lifetime parse
//     counters.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jaycherian/go-script-timeline/internal/core/model"
	"github.com/jaycherian/go-script-timeline/internal/telemetry"
)

// main is the primary entry point for the application.
// It orchestrates the setup of logging, telemetry, configuration, the parser
// service, the web server, and API routes. It also handles graceful shutdown
// of the server upon receiving an interrupt signal.
func main() {
	// Initialize structured logging for the application.
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	// Root context for the application; cancelled when main exits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load application configuration from TOML files.
	cfg := GetConfig()

	// Initialize OpenTelemetry for distributed tracing and metrics.
	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, cfg)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	// Initialize the application's state: the workflow-backed parser service
	// and its rate-limiting decorator.
	InitState()
	slog.Info("Initialized State")

	// Set up the Gin web server with default middleware.
	r := gin.Default()

	// Add OpenTelemetry middleware to the Gin router to trace incoming
	// requests. This will automatically create spans for each request.
	r.Use(otelgin.Middleware(cfg.Application.Name))

	// Configure Cross-Origin Resource Sharing (CORS) middleware.
	// Using cors.Default() provides a permissive configuration suitable for
	// development, allowing requests from any origin.
	r.Use(cors.Default())

	// Liveness endpoint outside the API group so probes skip the rate limit.
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Group routes under the "/api/v1" prefix.
	apiV1 := r.Group("/api/v1")
	{
		TimelineRouter(apiV1)
		Dashboard(apiV1)
	}

	// Configure the HTTP server with the address and handler.
	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	// Start the HTTP server in a separate goroutine so it doesn't block the
	// main thread.
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready", "port", cfg.Server.Port)

	// Block until an OS interrupt signal is received.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	// Give active requests 5 seconds to complete.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed:", "error", err)
	}

	log.Println("Server exiting")
}

// TimelineRouter sets up the API routes for script parsing.
//
// Inputs:
//   - r: A *gin.RouterGroup to which the timeline routes will be added. This
//     allows nesting routes under a common path prefix (e.g., "/api/v1").
//
// Outputs:
//   - This function does not return any values. It modifies the provided
//     *gin.RouterGroup by adding new route handlers.
//
// This function defines the following endpoints:
//   - POST /timelines: Parses one script request into a Timeline. Requests
//     whose script text exceeds the configured character cap are rejected
//     with 413 before any parse work starts.
//   - POST /timelines/batch: Parses an array of script requests concurrently
//     and returns the results in input order.
func TimelineRouter(r *gin.RouterGroup) {
	timelines := r.Group("/timelines")
	{
		// Handler for POST /timelines
		timelines.POST("", func(c *gin.Context) {
			var request model.ScriptRequest
			if err := c.ShouldBindJSON(&request); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			// Reject oversize scripts up front. The normalizer inside the
			// pipeline also truncates, as a second line of defense for
			// non-HTTP callers.
			max := state.config.Parser.MaxScriptChars
			if max > 0 && utf8.RuneCountInString(request.ScriptText) > max {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{
					"error": "script text exceeds maximum length",
					"max":   max,
				})
				return
			}
			result, err := state.parser.Parse(c.Request.Context(), &request)
			if err != nil {
				log.Printf("Error parsing script: %v\n", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, result)
		})

		// Handler for POST /timelines/batch
		timelines.POST("/batch", func(c *gin.Context) {
			var requests []*model.ScriptRequest
			if err := c.ShouldBindJSON(&requests); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			max := state.config.Parser.MaxScriptChars
			for i, request := range requests {
				if request == nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "null request in batch", "index": i})
					return
				}
				if max > 0 && utf8.RuneCountInString(request.ScriptText) > max {
					c.JSON(http.StatusRequestEntityTooLarge, gin.H{
						"error": "script text exceeds maximum length",
						"index": i,
						"max":   max,
					})
					return
				}
			}
			results, err := state.service.ParseBatch(c.Request.Context(), requests)
			if err != nil {
				log.Printf("Error parsing batch: %v\n", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, results)
		})
	}
}

// Dashboard configures the API routes for service statistics.
// It creates a new route group "/stats" nested under the main API router
// group.
//
// Inputs:
//   - r: A *gin.RouterGroup to which the new "/stats" route group will be
//     added.
//
// Outputs:
//   - This function does not return any value. It modifies the provided
//     *gin.RouterGroup by adding a new route handler.
func Dashboard(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		// Handler for GET /stats: lifetime parse and warning counters.
		stats.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, state.service.Stats())
		})
	}
}
