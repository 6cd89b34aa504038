package service

import (
	"context"
	"strings"

	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/webhook"
	"github.com/sirupsen/logrus"
)

type reportService struct {
	issues    IssueRepository
	images    ImageStorage
	logger    *logrus.Logger
	publisher webhook.EventPublisher
}

func NewReportService(issues IssueRepository, images ImageStorage, logger *logrus.Logger, publisher webhook.EventPublisher) ReportService {
	return &reportService{
		issues:    issues,
		images:    images,
		logger:    logger,
		publisher: publisher,
	}
}

// SubmitReport проводит заявку по цепочке: сессия, точка на карте, текст, фото, запись в бд.
// Ошибка любого шага прерывает остальные. Загруженное фото при ошибке вставки не удаляется.
func (s *reportService) SubmitReport(ctx context.Context, viewer *models.User, report models.ReportSubmission) (*models.Issue, error) {
	if viewer == nil {
		return nil, ErrAuthRequired
	}
	if !report.HasLocation() {
		return nil, ErrLocationRequired
	}

	title := strings.TrimSpace(report.Title)
	description := strings.TrimSpace(report.Description)
	if title == "" || description == "" {
		return nil, ErrTextRequired
	}
	// Тип берется только из справочника, иначе он засоряет агрегат most_reported_issues
	if report.IssueType != nil {
		if _, ok := models.FindIssueType(*report.IssueType); !ok {
			return nil, ErrUnknownIssueType
		}
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "SubmitReport",
		"user_id": viewer.ID,
		"title":   title,
	})
	log.Info("Attempting to submit a new report")

	var imageURL *string
	if report.Image != nil {
		objectName, err := s.images.Upload(ctx, report.Image.Filename, report.Image.Content)
		if err != nil {
			log.WithError(err).Error("Failed to upload report image")
			return nil, &StepError{Step: "upload", Err: err}
		}
		url := s.images.PublicURL(objectName)
		imageURL = &url
	}

	issue := &models.Issue{
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		IssueType:   report.IssueType,
		Latitude:    *report.Latitude,
		Longitude:   *report.Longitude,
		CreatedBy:   viewer.ID,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		log.WithError(err).Error("Failed to create issue in repository")
		return nil, &StepError{Step: "insert", Err: err}
	}

	event := webhook.NewEvent(webhook.EventIssueReported, issue.ID, viewer.ID)
	event.Title = issue.Title
	event.ReporterEmail = viewer.Email
	event.ReporterName = viewer.Name
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish report event")
	}

	log.WithField("issue_id", issue.ID).Info("Report submitted successfully")
	return issue, nil
}
