package api

import (
	"errors"
	"net/http"

	"alcyxob/fitness-ai/internal/recovery"
	"alcyxob/fitness-ai/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondWithServiceError maps service and recovery errors onto HTTP statuses.
func respondWithServiceError(c *gin.Context, err error) {
	var (
		validation *recovery.ValidationFailure
		extraction *recovery.ExtractionFailure
		upstream   *recovery.UpstreamFailure
	)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDailyLimitReached):
		abortWithError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrArchiveUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Invalid AI output",
			"details": validation.Errors,
		})
	case errors.As(err, &extraction):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Could not read AI output",
			"details": []string{extraction.Reason},
		})
	case errors.As(err, &upstream):
		logrus.WithError(err).Warn("AI provider call failed")
		abortWithError(c, http.StatusBadGateway, "AI provider is unavailable, please try again later")
	default:
		logrus.WithError(err).Error("unhandled service error")
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
