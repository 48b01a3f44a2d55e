package api

import (
	"net/http"

	"aida-server/catalog"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListStyles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"styles": catalog.Styles()})
}

func (h *Handler) KeywordSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keywords": catalog.KeywordSuggestions()})
}
