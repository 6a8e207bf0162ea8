package api

import (
	"net/http"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/version"
	"github.com/gin-gonic/gin"
)

// Version returns build metadata injected at build time.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
	})
}
