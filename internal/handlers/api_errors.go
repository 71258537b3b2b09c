package handlers

import (
	"errors"
	"net/http"

	"cardviz/internal/cards"
	"cardviz/internal/images"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidSize    = errors.New("invalid image size")
	ErrHubUnavailable = errors.New("websocket hub unavailable")
)

func writeAPIError(c *gin.Context, log *zap.Logger, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	switch {
	// Operator input problems carry a message written by us; show it as a
	// warning and leave the board as it was.
	case errors.Is(err, cards.ErrInvalidJSON),
		errors.Is(err, cards.ErrInvalidCode),
		errors.Is(err, cards.ErrInvalidCard):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"warning": err.Error()})
		return
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidSize),
		errors.Is(err, images.ErrInvalidScale):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrHubUnavailable):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "live updates unavailable"})
		return
	}

	log.Error("internal error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
