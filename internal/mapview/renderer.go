package mapview

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shenikar/urban_eye/internal/models"
)

var (
	ErrNotMounted     = errors.New("map renderer is not mounted")
	ErrEmptyContainer = errors.New("map container is empty")
)

// DefaultCenter - центр карты, когда заявок нет (Бангалор)
var DefaultCenter = LngLat{77.5946, 12.9716}

const (
	DefaultZoom       = 12
	PickerZoom        = 13
	DefaultStyle      = "mapbox://styles/mapbox/dark-v11"
	ReuseKeep         = ReusePolicy("keep")
	ReuseFresh        = ReusePolicy("fresh")
	defaultMarkerSize = 30
)

// ReusePolicy определяет, остается ли карта смонтированной после отрисовки
type ReusePolicy string

// LngLat - координаты в порядке GeoJSON
type LngLat [2]float64

type Options struct {
	Style       string
	AccessToken string
	Zoom        float64
	Reuse       ReusePolicy
}

// Renderer - карта с явным жизненным циклом Mount/SetMarkers/Unmount.
// Экземпляр принадлежит вызывающему, глобального состояния нет.
type Renderer struct {
	mu sync.Mutex

	opts      Options
	container string
	mounted   bool
	markers   []Feature
	center    LngLat
	reused    bool
}

func NewRenderer(opts Options) *Renderer {
	if opts.Style == "" {
		opts.Style = DefaultStyle
	}
	if opts.Zoom == 0 {
		opts.Zoom = DefaultZoom
	}
	if opts.Reuse != ReuseFresh {
		opts.Reuse = ReuseKeep
	}
	return &Renderer{opts: opts, center: DefaultCenter}
}

// Mount привязывает карту к контейнеру. Повторный mount в другой контейнер переносит карту вместе с маркерами.
func (r *Renderer) Mount(container string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mount(container)
}

// SetMarkers заменяет маркеры. Центр - первая заявка или центр по умолчанию.
func (r *Renderer) SetMarkers(issues []*models.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setMarkers(issues)
}

// Unmount отвязывает карту и сбрасывает маркеры. Для несмонтированной карты ничего не делает.
func (r *Renderer) Unmount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unmount()
}

// Layer возвращает снимок текущего слоя
func (r *Renderer) Layer() (*Layer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layer()
}

// Mounted сообщает текущий контейнер
func (r *Renderer) Mounted() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.container, r.mounted
}

// Draw атомарно выполняет mount, setMarkers и снимок слоя. При политике fresh карта размонтируется.
func (r *Renderer) Draw(container string, issues []*models.Issue) (*Layer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.mount(container); err != nil {
		return nil, err
	}
	if err := r.setMarkers(issues); err != nil {
		return nil, err
	}
	layer, err := r.layer()
	if err != nil {
		return nil, err
	}
	if r.opts.Reuse == ReuseFresh {
		r.unmount()
	}
	return layer, nil
}

func (r *Renderer) mount(container string) error {
	if container == "" {
		return ErrEmptyContainer
	}
	r.reused = r.mounted
	r.container = container
	r.mounted = true
	return nil
}

func (r *Renderer) setMarkers(issues []*models.Issue) error {
	if !r.mounted {
		return ErrNotMounted
	}

	markers := make([]Feature, 0, len(issues))
	for _, issue := range issues {
		f, err := newFeature(issue)
		if err != nil {
			return fmt.Errorf("failed to build marker for issue %s: %w", issue.ID, err)
		}
		markers = append(markers, f)
	}

	r.markers = markers
	r.center = DefaultCenter
	if len(issues) > 0 {
		r.center = LngLat{issues[0].Longitude, issues[0].Latitude}
	}
	return nil
}

func (r *Renderer) unmount() {
	r.mounted = false
	r.container = ""
	r.reused = false
	r.markers = nil
	r.center = DefaultCenter
}

func (r *Renderer) layer() (*Layer, error) {
	if !r.mounted {
		return nil, ErrNotMounted
	}
	features := make([]Feature, len(r.markers))
	copy(features, r.markers)

	return &Layer{
		Container:   r.container,
		Style:       r.opts.Style,
		AccessToken: r.opts.AccessToken,
		Center:      r.center,
		Zoom:        r.opts.Zoom,
		Reused:      r.reused,
		Markers: FeatureCollection{
			Type:     "FeatureCollection",
			Features: features,
		},
	}, nil
}
