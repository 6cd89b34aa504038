package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/view"
)

const (
	myReportsRedirect = "/my-reports"
	mostReportedLimit = 5
)

// @Summary List issues
// @Description List all issues ordered on the server. A failed read is reported as status "failed", never as an empty list.
// @Tags Issues
// @Produce json
// @Param order_by query string false "Order field" Enums(upvotes, created_at) default(created_at)
// @Param ascending query bool false "Ascending order" default(false)
// @Param limit query int false "Maximum number of issues, 0 for all" default(0)
// @Success 200 {object} IssueListResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} IssueListResponse "Read failed"
// @Router /issues [get]
func (h *Handler) listIssues(c *gin.Context) {
	log := h.logger.WithField("method", "listIssues")

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
		return
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	list := h.services.Issues.ListIssues(c.Request.Context(), QueryToListOptions(query))
	h.respondList(c, IssueListToResponse(list, h.votedSet(c, log), true, h.now()))
}

// respondList отдает список; неудачное чтение - 500 с причиной
func (h *Handler) respondList(c *gin.Context, resp IssueListResponse) {
	if resp.Status == models.ListFailed {
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get issue by ID
// @Description Get a single issue card
// @Tags Issues
// @Produce json
// @Param id path string true "Issue ID"
// @Success 200 {object} IssueCardResponse
// @Failure 400 {object} ErrorResponse "Invalid issue ID"
// @Failure 404 {object} ErrorResponse "Issue not found"
// @Router /issues/{id} [get]
func (h *Handler) getIssue(c *gin.Context) {
	id, ok := parseIssueID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIssue").WithField("id", id)

	issue, err := h.services.Issues.GetIssue(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	voted := h.votedSet(c, log)
	c.JSON(http.StatusOK, IssueCardResponse{Issue: view.NewIssueCard(issue, voted.Has(id), true, h.now())})
}

// @Summary Report an issue
// @Description Submit a geotagged report with an optional photo. Location must be chosen before anything is stored.
// @Tags Issues
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param issue_type formData string false "Issue type from the library"
// @Param latitude formData number true "Latitude"
// @Param longitude formData number true "Longitude"
// @Param image formData file false "Photo"
// @Success 201 {object} ReportCreatedResponse
// @Failure 400 {object} ErrorResponse "Location or text missing, or unknown issue type"
// @Failure 401 {object} ErrorResponse "Login required"
// @Failure 413 {object} ErrorResponse "Upload too large"
// @Failure 500 {object} ErrorResponse "Upload or insert failed"
// @Router /issues [post]
func (h *Handler) createIssue(c *gin.Context) {
	log := h.logger.WithField("method", "createIssue")
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	var form ReportForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.WithField("limit", tooLarge.Limit).Warn("Upload exceeds size limit")
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: fmt.Sprintf("upload is larger than %s", humanize.IBytes(uint64(tooLarge.Limit))),
			})
			return
		}
		log.WithError(err).Warn("Failed to bind form")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form"})
		return
	}
	if err := h.validate.Struct(form); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var image *models.ImageUpload
	file, header, err := c.Request.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		image = &models.ImageUpload{Filename: header.Filename, Content: file}
	case errors.Is(err, http.ErrMissingFile):
	default:
		log.WithError(err).Warn("Failed to read image")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image"})
		return
	}

	issue, err := h.services.Reports.SubmitReport(c.Request.Context(), viewer(c), FormToReportSubmission(form, image))
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, ReportCreatedResponse{
		Issue:    view.NewIssueCard(issue, false, false, h.now()),
		Redirect: myReportsRedirect,
		Toast:    Toast{Title: "Issue reported!", Description: "Your civic issue has been successfully reported."},
	})
}

// @Summary Delete own issue
// @Description Delete an issue owned by the current user and return the refreshed list of own reports
// @Tags Issues
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} ErrorResponse "Invalid issue ID"
// @Failure 401 {object} ErrorResponse "Login required"
// @Failure 404 {object} ErrorResponse "Issue not found or not owned"
// @Router /issues/{id} [delete]
func (h *Handler) deleteIssue(c *gin.Context) {
	id, ok := parseIssueID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteIssue").WithField("id", id)
	user := viewer(c)

	if err := h.services.Issues.DeleteIssue(c.Request.Context(), id, user.ID); err != nil {
		h.respondError(c, log, err)
		return
	}

	list := h.services.Issues.ListByOwner(c.Request.Context(), user.ID)
	c.JSON(http.StatusOK, DeleteResponse{
		MyReports: IssueListToResponse(list, nil, false, h.now()),
		Toast:     Toast{Title: "Issue deleted", Description: "Your report has been removed"},
	})
}

// @Summary Upvote an issue
// @Description Record the viewer's vote. Repeated votes change nothing. Anonymous viewers get 401 with a redirect to /auth.
// @Tags Issues
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} UpvoteResponse
// @Failure 400 {object} ErrorResponse "Invalid issue ID"
// @Failure 401 {object} ErrorResponse "Login required"
// @Failure 404 {object} ErrorResponse "Issue not found"
// @Router /issues/{id}/upvote [post]
func (h *Handler) upvoteIssue(c *gin.Context) {
	id, ok := parseIssueID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "upvoteIssue").WithField("id", id)

	result, err := h.services.Votes.Upvote(c.Request.Context(), viewer(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	issue, err := h.services.Issues.GetIssue(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	// Счётчик из транзакции голосования точнее кеша
	issue.Upvotes = result.Upvotes

	resp := UpvoteResponse{
		IssueID: id,
		Upvotes: result.Upvotes,
		Changed: result.Changed,
		Issue:   view.NewIssueCard(issue, result.Voted, true, h.now()),
	}
	if result.Changed {
		resp.Toast = &Toast{Title: "Upvoted!", Description: "Your vote has been recorded"}
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Viewer votes
// @Description IDs of issues the current user has upvoted
// @Tags Votes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} VotesResponse
// @Failure 401 {object} ErrorResponse "Login required"
// @Router /votes/me [get]
func (h *Handler) myVotes(c *gin.Context) {
	log := h.logger.WithField("method", "myVotes")

	voted, err := h.services.Votes.VotedIssues(c.Request.Context(), viewer(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, VotesResponse{IssueIDs: voted.IDs()})
}

// @Summary Most reported issue types
// @Description Top issue types by number of reports with bar percentages relative to the top entry
// @Tags Issues
// @Produce json
// @Success 200 {array} view.MostReportedBar
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /issue-types/most-reported [get]
func (h *Handler) mostReported(c *gin.Context) {
	log := h.logger.WithField("method", "mostReported")

	rows, err := h.services.Issues.MostReported(c.Request.Context(), mostReportedLimit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, view.NewMostReportedBars(rows))
}
