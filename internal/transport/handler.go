package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"land-sentinel/internal/config"
	apperrors "land-sentinel/internal/errors"
	"land-sentinel/internal/logger"
	"land-sentinel/internal/service"
	"land-sentinel/internal/storage"
	"land-sentinel/pkg/models"
	"land-sentinel/pkg/validation"
)

// NewHandler configures the HTTP API. When serveResults is non-empty the
// artifact directory is served statically under /results.
func NewHandler(svc service.LandAnalysisService, fetcher storage.ImageFetcher, cfg *config.Config, serveResults string) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.Server.MaxUploadBytes),
		errorHandler(),
	)

	r.GET("/health", healthCheck)

	api := r.Group("/api")
	api.POST("/upload", uploadProject(svc, fetcher, cfg))
	api.POST("/analyze/:id", analyzeProject(svc, cfg))
	api.GET("/projects", listProjects(svc))
	api.GET("/projects/:id", getProject(svc))
	api.GET("/reports/:id", getReport(svc))

	if serveResults != "" {
		r.Static("/results", serveResults)
	}

	return r
}

// uploadProject accepts multipart form data: a "reference" plot map file, a
// "satellite" capture (file or remote "satellite_url"), and optional
// "project_name" and "plot_id" fields.
func uploadProject(svc service.LandAnalysisService, fetcher storage.ImageFetcher, cfg *config.Config) gin.HandlerFunc {
	urlValidator := validation.NewURLValidator()

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Server.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing project upload")

		refData, refName, err := formFile(c, "reference")
		if err != nil {
			respondError(c, http.StatusBadRequest, "reference image is required", err)
			return
		}

		satData, satName, err := formFile(c, "satellite")
		if err != nil {
			satURL := c.PostForm("satellite_url")
			if satURL == "" {
				respondError(c, http.StatusBadRequest, "satellite image or satellite_url is required", err)
				return
			}
			if err := urlValidator.ValidateImageURL(satURL); err != nil {
				respondError(c, apperrors.GetStatusCode(err), "invalid satellite URL", err)
				return
			}
			satData, err = fetcher.FetchImage(ctx, satURL)
			if err != nil {
				respondError(c, http.StatusBadGateway, "failed to fetch satellite image", err)
				return
			}
			satName = "satellite.png"
		}

		project, err := svc.CreateProject(ctx, service.CreateProjectInput{
			Name:          c.PostForm("project_name"),
			PlotID:        c.PostForm("plot_id"),
			Reference:     refData,
			ReferenceName: refName,
			Satellite:     satData,
			SatelliteName: satName,
		})
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "upload failed", err)
			return
		}

		c.JSON(http.StatusCreated, models.UploadResponse{
			Message: "Upload successful. Trigger analysis to generate compliance results.",
			Project: project,
		})
	}
}

func analyzeProject(svc service.LandAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Analysis gets its own budget on top of the transport timeout.
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Server.RequestTimeout+cfg.Server.AnalysisTimeout)
		defer cancel()

		result, err := svc.AnalyzeProject(ctx, c.Param("id"))
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "analysis failed", err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func listProjects(svc service.LandAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := svc.ListProjects(c.Request.Context())
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to list projects", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects, "count": len(projects)})
	}
}

func getProject(svc service.LandAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := svc.GetProject(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to load project", err)
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

func getReport(svc service.LandAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := svc.BuildReport(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to build report", err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func formFile(c *gin.Context, field string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	f, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
