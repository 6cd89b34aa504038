package mapview

import (
	"bytes"
	"html/template"

	"github.com/shenikar/urban_eye/internal/models"
)

// Layer - снимок карты для клиента
type Layer struct {
	Container   string            `json:"container"`
	Style       string            `json:"style"`
	AccessToken string            `json:"access_token,omitempty"`
	Center      LngLat            `json:"center"`
	Zoom        float64           `json:"zoom"`
	Reused      bool              `json:"reused"`
	Markers     FeatureCollection `json:"markers"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

type Geometry struct {
	Type        string `json:"type"`
	Coordinates LngLat `json:"coordinates"`
}

type Properties struct {
	IssueID    string `json:"issue_id"`
	Title      string `json:"title"`
	Upvotes    int    `json:"upvotes"`
	MarkerSize int    `json:"marker_size"`
	PopupHTML  string `json:"popup_html"`
}

var popupTemplate = template.Must(template.New("popup").Parse(
	`<div class="issue-popup">` +
		`{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" />{{end}}` +
		`<h3>{{.Title}}</h3>` +
		`<p>{{.Description}}</p>` +
		`<span>{{.Upvotes}} upvotes</span>` +
		`</div>`))

type popupData struct {
	ImageURL    string
	Title       string
	Description string
	Upvotes     int
}

func newFeature(issue *models.Issue) (Feature, error) {
	data := popupData{
		Title:       issue.Title,
		Description: issue.Description,
		Upvotes:     issue.Upvotes,
	}
	if issue.ImageURL != nil {
		data.ImageURL = *issue.ImageURL
	}

	var buf bytes.Buffer
	if err := popupTemplate.Execute(&buf, data); err != nil {
		return Feature{}, err
	}

	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: LngLat{issue.Longitude, issue.Latitude},
		},
		Properties: Properties{
			IssueID:    issue.ID.String(),
			Title:      issue.Title,
			Upvotes:    issue.Upvotes,
			MarkerSize: defaultMarkerSize,
			PopupHTML:  buf.String(),
		},
	}, nil
}
