package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/urban_eye/internal/export"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/storage"
)

// @Summary Leaderboard PDF
// @Description Download the leaderboard as a PDF
// @Tags Exports
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /exports/leaderboard.pdf [get]
func (h *Handler) leaderboardPDF(c *gin.Context) {
	log := h.logger.WithField("method", "leaderboardPDF")

	list := h.services.Issues.ListIssues(c.Request.Context(), models.ListOptions{OrderBy: models.OrderByUpvotes})
	if list.Failed() {
		log.WithField("reason", list.Reason).Error("Failed to list issues for export")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: list.Reason})
		return
	}

	pdf, err := export.LeaderboardPDF(list.Issues, h.now())
	if err != nil {
		log.WithError(err).Error("Failed to render leaderboard")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leaderboard.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// @Summary Public image
// @Description Serve an uploaded issue photo
// @Tags Storage
// @Produce image/png,image/jpeg,application/octet-stream
// @Param bucket path string true "Bucket name"
// @Param name path string true "Object name"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /storage/{bucket}/{name} [get]
func (h *Handler) serveImage(c *gin.Context) {
	log := h.logger.WithField("method", "serveImage")

	if c.Param("bucket") != h.images.Name() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "bucket not found"})
		return
	}

	obj, err := h.images.Open(c.Param("name"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidName) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "object not found"})
			return
		}
		log.WithError(err).Error("Failed to open object")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	defer obj.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}
