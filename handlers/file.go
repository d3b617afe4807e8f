package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"cafehopper/config"
	"cafehopper/utils"
)

func (h *Handler) ServeFile(c *gin.Context) {
	filename := c.Param("filename")

	// Reject anything that could escape the upload directory.
	if filename == "" || strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		utils.BadRequest(c, "invalid filename")
		return
	}

	c.File(filepath.Join(config.Cfg.UploadDir, filename))
}
