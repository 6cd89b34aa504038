package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/urban_eye/internal/mapview"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/view"
)

const (
	homeTopIssues = 3
	mapContainer  = "map"
)

// @Summary Home page
// @Description Top 3 issues by upvotes with the viewer's votes and the most reported issue types
// @Tags Pages
// @Produce json
// @Success 200 {object} HomePageResponse
// @Router /pages/home [get]
func (h *Handler) homePage(c *gin.Context) {
	log := h.logger.WithField("method", "homePage")
	ctx := c.Request.Context()

	list := h.services.Issues.ListIssues(ctx, models.ListOptions{OrderBy: models.OrderByUpvotes, Limit: homeTopIssues})
	voted := h.votedSet(c, log)

	bars := []view.MostReportedBar{}
	rows, err := h.services.Issues.MostReported(ctx, mostReportedLimit)
	if err != nil {
		// Блок просто не показывается
		log.WithError(err).Warn("Failed to load most reported issues")
	} else {
		bars = view.NewMostReportedBars(rows)
	}

	c.JSON(http.StatusOK, HomePageResponse{
		Viewer:       ModelToUserResponse(viewer(c)),
		TopIssues:    IssueListToResponse(list, voted, true, h.now()),
		MostReported: bars,
	})
}

// @Summary Leaderboard page
// @Description All issues ordered by upvotes, highest first
// @Tags Pages
// @Produce json
// @Success 200 {object} LeaderboardPageResponse
// @Failure 500 {object} LeaderboardPageResponse "Read failed"
// @Router /pages/leaderboard [get]
func (h *Handler) leaderboardPage(c *gin.Context) {
	log := h.logger.WithField("method", "leaderboardPage")

	list := h.services.Issues.ListIssues(c.Request.Context(), models.ListOptions{OrderBy: models.OrderByUpvotes})
	resp := LeaderboardPageResponse{
		Viewer: ModelToUserResponse(viewer(c)),
		Issues: IssueListToResponse(list, h.votedSet(c, log), true, h.now()),
	}

	status := http.StatusOK
	if list.Failed() {
		status = http.StatusInternalServerError
	}
	c.JSON(status, resp)
}

// @Summary My reports page
// @Description Issues created by the current user, newest first, without upvote buttons
// @Tags Pages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MyReportsPageResponse
// @Failure 401 {object} ErrorResponse "Login required"
// @Failure 500 {object} MyReportsPageResponse "Read failed"
// @Router /pages/my-reports [get]
func (h *Handler) myReportsPage(c *gin.Context) {
	user := viewer(c)
	list := h.services.Issues.ListByOwner(c.Request.Context(), user.ID)

	status := http.StatusOK
	if list.Failed() {
		status = http.StatusInternalServerError
	}
	c.JSON(status, MyReportsPageResponse{
		Viewer: *ModelToUserResponse(user),
		Issues: IssueListToResponse(list, nil, false, h.now()),
	})
}

// @Summary Issue library page
// @Description Catalog of common issue types used to prefill a report
// @Tags Pages
// @Produce json
// @Success 200 {object} LibraryPageResponse
// @Router /pages/library [get]
func (h *Handler) libraryPage(c *gin.Context) {
	c.JSON(http.StatusOK, LibraryPageResponse{
		Viewer:     ModelToUserResponse(viewer(c)),
		IssueTypes: models.IssueTypes,
	})
}

// @Summary Report issue page
// @Description Form defaults for a new report. issue_type from the library prefills title and description.
// @Tags Pages
// @Produce json
// @Security BearerAuth
// @Param issue_type query string false "Issue type ID from the library"
// @Success 200 {object} ReportPageResponse
// @Failure 401 {object} ErrorResponse "Login required"
// @Router /pages/report [get]
func (h *Handler) reportPage(c *gin.Context) {
	resp := ReportPageResponse{
		Viewer:    *ModelToUserResponse(viewer(c)),
		MapCenter: mapview.DefaultCenter,
		MapZoom:   mapview.PickerZoom,
		MapStyle:  h.cfg.MapStyle,
	}
	// Неизвестный тип дает пустую форму
	if issueType, ok := models.FindIssueType(c.Query("issue_type")); ok {
		resp.Title = issueType.Name
		resp.Description = issueType.DefaultDescription
		resp.IssueType = issueType.ID
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Map page
// @Description GeoJSON layer with a marker and popup for every issue, newest first
// @Tags Pages
// @Produce json
// @Success 200 {object} MapPageResponse
// @Failure 500 {object} MapPageResponse "Read failed"
// @Router /pages/map [get]
func (h *Handler) mapPage(c *gin.Context) {
	log := h.logger.WithField("method", "mapPage")

	list := h.services.Issues.ListIssues(c.Request.Context(), models.ListOptions{OrderBy: models.OrderByCreatedAt})
	resp := MapPageResponse{
		Viewer: ModelToUserResponse(viewer(c)),
		Status: list.Status,
		Reason: list.Reason,
	}
	if list.Failed() {
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	layer, err := h.renderer.Draw(mapContainer, list.Issues)
	if err != nil {
		log.WithError(err).Error("Failed to draw map")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	resp.Layer = layer
	c.JSON(http.StatusOK, resp)
}
