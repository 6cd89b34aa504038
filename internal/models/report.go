package models

import (
	"io"
)

// ImageUpload - файл фотографии, приложенный к заявке
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ReportSubmission - данные формы подачи заявки
type ReportSubmission struct {
	Title       string
	Description string
	IssueType   *string
	Latitude    *float64
	Longitude   *float64
	Image       *ImageUpload
}

// HasLocation сообщает, выбрана ли точка на карте
func (r ReportSubmission) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}
