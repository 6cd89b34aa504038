package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/config"
	"github.com/shenikar/urban_eye/internal/mapview"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/service"
	"github.com/shenikar/urban_eye/internal/session"
	"github.com/shenikar/urban_eye/internal/storage"
	"github.com/sirupsen/logrus"
)

const authRedirect = "/auth"

// Services - сервисы, которые использует HTTP слой
type Services struct {
	Issues  service.IssueService
	Votes   service.VoteService
	Reports service.ReportService
	Auth    service.AuthService
}

// ImageBucket отдает сохраненные фотографии
type ImageBucket interface {
	Name() string
	Open(objectName string) (*storage.Object, error)
}

// Handler владеет единственным экземпляром карты на все запросы
type Handler struct {
	services Services
	images   ImageBucket
	renderer *mapview.Renderer
	logger   *logrus.Logger
	validate *validator.Validate
	cfg      *config.Config
	now      func() time.Time
}

func NewHandler(services Services, images ImageBucket, renderer *mapview.Renderer, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		services: services,
		images:   images,
		renderer: renderer,
		logger:   logger,
		validate: validator.New(),
		cfg:      cfg,
		now:      time.Now,
	}
}

// viewer возвращает пользователя сессии или nil
func viewer(c *gin.Context) *models.User {
	return session.FromContext(c.Request.Context())
}

func parseIssueID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid issue ID"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError переводит ошибки сервисов в HTTP ответы
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	var stepErr *service.StepError
	switch {
	case errors.Is(err, service.ErrAuthRequired), errors.Is(err, service.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: service.ErrAuthRequired.Error(), Redirect: authRedirect})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrLocationRequired), errors.Is(err, service.ErrTextRequired),
		errors.Is(err, service.ErrUnknownIssueType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrIssueNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "issue not found"})
	case errors.Is(err, models.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.As(err, &stepErr):
		// Ошибка хранилища или бд отдается клиенту как есть
		log.WithError(err).WithField("step", stepErr.Step).Error("Report step failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	default:
		log.WithError(err).Error("Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// votedSet возвращает голоса зрителя. Ошибка не мешает показать страницу.
func (h *Handler) votedSet(c *gin.Context, log *logrus.Entry) models.VoteSet {
	voted, err := h.services.Votes.VotedIssues(c.Request.Context(), viewer(c))
	if err != nil {
		log.WithError(err).Warn("Failed to load viewer votes")
		return models.NewVoteSet()
	}
	return voted
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
