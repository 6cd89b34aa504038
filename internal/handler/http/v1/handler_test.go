package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/config"
	"github.com/shenikar/urban_eye/internal/mapview"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/service"
	"github.com/shenikar/urban_eye/internal/service/mocks"
	"github.com/shenikar/urban_eye/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testToken = "valid-token"

type handlerMocks struct {
	issues  *mocks.MockIssueService
	votes   *mocks.MockVoteService
	reports *mocks.MockReportService
	auth    *mocks.MockAuthService
	bucket  *storage.Bucket
}

var testNow = time.Date(2024, time.March, 8, 12, 0, 0, 0, time.UTC)

// newTestHandler создает Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, handlerMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := handlerMocks{
		issues:  mocks.NewMockIssueService(ctrl),
		votes:   mocks.NewMockVoteService(ctrl),
		reports: mocks.NewMockReportService(ctrl),
		auth:    mocks.NewMockAuthService(ctrl),
	}

	bucket, err := storage.NewBucket(t.TempDir(), "issue-images", "http://localhost:8080")
	require.NoError(t, err)
	m.bucket = bucket

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		SessionTTL:     time.Hour,
		MaxUploadBytes: 1 << 20,
		MapStyle:       mapview.DefaultStyle,
	}

	services := Services{Issues: m.issues, Votes: m.votes, Reports: m.reports, Auth: m.auth}
	handler := NewHandler(services, bucket, mapview.NewRenderer(mapview.Options{}), logger, cfg)
	handler.now = func() time.Time { return testNow }

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}

// expectSession настраивает успешную аутентификацию по testToken
func expectSession(m handlerMocks, user *models.User) {
	m.auth.EXPECT().Authenticate(gomock.Any(), testToken).Return(user, nil).AnyTimes()
}

func testUser() *models.User {
	return &models.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com"}
}

func testIssue(upvotes int) *models.Issue {
	return &models.Issue{
		ID:          uuid.New(),
		Title:       "Pothole on 80 Feet Road",
		Description: "Deep pothole near the signal",
		Latitude:    12.9716,
		Longitude:   77.5946,
		Upvotes:     upvotes,
		CreatedAt:   testNow.Add(-48 * time.Hour),
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListIssues_OrderedWithVotes(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()
	expectSession(m, user)
	top, second := testIssue(9), testIssue(2)

	m.issues.EXPECT().
		ListIssues(gomock.Any(), models.ListOptions{OrderBy: models.OrderByUpvotes, Limit: 2}).
		Return(models.NewIssueList([]*models.Issue{top, second}, nil))
	m.votes.EXPECT().VotedIssues(gomock.Any(), user).Return(models.NewVoteSet(top.ID), nil)

	w := makeRequest(router, "GET", "/api/v1/issues?order_by=upvotes&limit=2", nil, authHeader())

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[IssueListResponse](t, w)
	assert.Equal(t, models.ListOK, resp.Status)
	require.Len(t, resp.Issues, 2)
	assert.GreaterOrEqual(t, resp.Issues[0].Upvotes, resp.Issues[1].Upvotes)
	assert.True(t, resp.Issues[0].Disabled)
	assert.Equal(t, "Upvoted (9)", resp.Issues[0].UpvoteLabel)
	assert.Equal(t, "Upvote (2)", resp.Issues[1].UpvoteLabel)
}

func TestListIssues_InvalidOrder(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/issues?order_by=title", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListIssues_FailedIsDistinctFromEmpty(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.issues.EXPECT().ListIssues(gomock.Any(), gomock.Any()).Return(models.NewIssueList(nil, errors.New("service: could not list issues: timeout")))
	m.votes.EXPECT().VotedIssues(gomock.Any(), nil).Return(models.NewVoteSet(), nil)

	w := makeRequest(router, "GET", "/api/v1/issues", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[IssueListResponse](t, w)
	assert.Equal(t, models.ListFailed, resp.Status)
	assert.Contains(t, resp.Reason, "timeout")
}

func TestListIssues_Empty(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.issues.EXPECT().ListIssues(gomock.Any(), gomock.Any()).Return(models.NewIssueList(nil, nil))
	m.votes.EXPECT().VotedIssues(gomock.Any(), nil).Return(models.NewVoteSet(), nil)

	w := makeRequest(router, "GET", "/api/v1/issues", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ListEmpty, decode[IssueListResponse](t, w).Status)
}

func TestGetIssue_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()

	m.issues.EXPECT().GetIssue(gomock.Any(), id).Return(nil, models.ErrIssueNotFound)

	w := makeRequest(router, "GET", "/api/v1/issues/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetIssue_InvalidID(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/issues/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid issue ID")
}

// Сценарий: анонимный голос - 401 и переход на вход; после входа 3 -> 4; повторный голос оставляет 4
func TestUpvote_Scenario(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()
	issue := testIssue(3)
	url := "/api/v1/issues/" + issue.ID.String() + "/upvote"

	// Анонимный зритель
	m.votes.EXPECT().Upvote(gomock.Any(), nil, issue.ID).Return(nil, service.ErrAuthRequired)

	w := makeRequest(router, "POST", url, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/auth", decode[ErrorResponse](t, w).Redirect)

	// Первый голос после входа
	expectSession(m, user)
	m.votes.EXPECT().Upvote(gomock.Any(), user, issue.ID).
		Return(&models.UpvoteResult{IssueID: issue.ID, Upvotes: 4, Voted: true, Changed: true}, nil)
	m.issues.EXPECT().GetIssue(gomock.Any(), issue.ID).
		DoAndReturn(func(_ context.Context, _ uuid.UUID) (*models.Issue, error) {
			updated := *issue
			updated.Upvotes = 4
			return &updated, nil
		})

	w = makeRequest(router, "POST", url, nil, authHeader())
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[UpvoteResponse](t, w)
	assert.Equal(t, 4, first.Upvotes)
	assert.True(t, first.Issue.Disabled)
	assert.Equal(t, "Upvoted (4)", first.Issue.UpvoteLabel)
	require.NotNil(t, first.Toast)
	assert.Equal(t, "Upvoted!", first.Toast.Title)

	// Повторный голос
	m.votes.EXPECT().Upvote(gomock.Any(), user, issue.ID).
		Return(&models.UpvoteResult{IssueID: issue.ID, Upvotes: 4, Voted: true}, nil)
	m.issues.EXPECT().GetIssue(gomock.Any(), issue.ID).Return(&models.Issue{ID: issue.ID, Upvotes: 4}, nil)

	w = makeRequest(router, "POST", url, nil, authHeader())
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[UpvoteResponse](t, w)
	assert.Equal(t, 4, second.Upvotes)
	assert.False(t, second.Changed)
	assert.Nil(t, second.Toast)
}

func TestSessionMiddleware_InvalidTokenIsAnonymous(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.auth.EXPECT().Authenticate(gomock.Any(), "stale").Return(nil, service.ErrSessionExpired)
	m.issues.EXPECT().ListIssues(gomock.Any(), gomock.Any()).Return(models.NewIssueList(nil, nil))
	m.votes.EXPECT().VotedIssues(gomock.Any(), nil).Return(models.NewVoteSet(), nil)

	w := makeRequest(router, "GET", "/api/v1/issues", nil, map[string]string{"Cookie": "auth_token=stale"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSession(t *testing.T) {
	_, _, router := newTestHandler(t)

	for _, path := range []string{"/api/v1/pages/my-reports", "/api/v1/pages/report", "/api/v1/votes/me", "/api/v1/auth/me"} {
		w := makeRequest(router, "GET", path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Contains(t, w.Body.String(), `"redirect":"/auth"`, path)
	}
}

func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreateIssue_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()
	expectSession(m, user)

	body, contentType := multipartBody(t, map[string]string{
		"title":       "Garbage dump",
		"description": "Bins overflowing",
		"issue_type":  "garbage",
		"latitude":    "12.9716",
		"longitude":   "77.5946",
	}, "pile.JPG", []byte("jpeg-bytes"))

	m.reports.EXPECT().
		SubmitReport(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.User, r models.ReportSubmission) (*models.Issue, error) {
			require.NotNil(t, r.Latitude)
			assert.InDelta(t, 12.9716, *r.Latitude, 1e-9)
			require.NotNil(t, r.IssueType)
			assert.Equal(t, "garbage", *r.IssueType)
			require.NotNil(t, r.Image)
			assert.Equal(t, "pile.JPG", r.Image.Filename)
			content, err := io.ReadAll(r.Image.Content)
			require.NoError(t, err)
			assert.Equal(t, "jpeg-bytes", string(content))
			issue := testIssue(0)
			issue.Title = r.Title
			return issue, nil
		})

	w := makeRequest(router, "POST", "/api/v1/issues", body, authHeader(), map[string]string{"Content-Type": contentType})

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[ReportCreatedResponse](t, w)
	assert.Equal(t, "/my-reports", resp.Redirect)
	assert.Equal(t, "Issue reported!", resp.Toast.Title)
	assert.Equal(t, "Garbage dump", resp.Issue.Title)
}

func TestCreateIssue_WithoutLocation(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()
	expectSession(m, user)

	body, contentType := multipartBody(t, map[string]string{"title": "t", "description": "d"}, "", nil)

	m.reports.EXPECT().
		SubmitReport(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.User, r models.ReportSubmission) (*models.Issue, error) {
			assert.False(t, r.HasLocation())
			assert.Nil(t, r.Image)
			return nil, service.ErrLocationRequired
		})

	w := makeRequest(router, "POST", "/api/v1/issues", body, authHeader(), map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrLocationRequired.Error(), decode[ErrorResponse](t, w).Error)
}

func TestCreateIssue_BackendErrorVerbatim(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()
	expectSession(m, user)

	body, contentType := multipartBody(t, map[string]string{"title": "t", "description": "d", "latitude": "1", "longitude": "2"}, "", nil)

	m.reports.EXPECT().
		SubmitReport(gomock.Any(), user, gomock.Any()).
		Return(nil, &service.StepError{Step: "insert", Err: errors.New("duplicate key value violates unique constraint")})

	w := makeRequest(router, "POST", "/api/v1/issues", body, authHeader(), map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "duplicate key value violates unique constraint", decode[ErrorResponse](t, w).Error)
}

func TestCreateIssue_InvalidLatitude(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectSession(m, testUser())

	body, contentType := multipartBody(t, map[string]string{"title": "t", "description": "d", "latitude": "123", "longitude": "2"}, "", nil)

	w := makeRequest(router, "POST", "/api/v1/issues", body, authHeader(), map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateIssue_UnknownIssueType(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()
	expectSession(m, user)

	body, contentType := multipartBody(t, map[string]string{
		"title": "t", "description": "d", "issue_type": "banana", "latitude": "1", "longitude": "2",
	}, "", nil)

	m.reports.EXPECT().SubmitReport(gomock.Any(), user, gomock.Any()).Return(nil, service.ErrUnknownIssueType)

	w := makeRequest(router, "POST", "/api/v1/issues", body, authHeader(), map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrUnknownIssueType.Error(), decode[ErrorResponse](t, w).Error)
}

// Превышение лимита размера отличается от испорченной формы
func TestCreateIssue_UploadTooLarge(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectSession(m, testUser())

	body, contentType := multipartBody(t, map[string]string{
		"title": "t", "description": "d", "latitude": "1", "longitude": "2",
	}, "huge.jpg", bytes.Repeat([]byte{0xff}, 2<<20))

	w := makeRequest(router, "POST", "/api/v1/issues", body, authHeader(), map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "1.0 MiB")
}

func TestCreateIssue_Anonymous(t *testing.T) {
	_, _, router := newTestHandler(t)

	body, contentType := multipartBody(t, map[string]string{"title": "t"}, "", nil)
	w := makeRequest(router, "POST", "/api/v1/issues", body, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteIssue_RefreshesOwnReports(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()
	expectSession(m, user)
	deleted, kept := testIssue(1), testIssue(5)

	m.issues.EXPECT().DeleteIssue(gomock.Any(), deleted.ID, user.ID).Return(nil)
	m.issues.EXPECT().ListByOwner(gomock.Any(), user.ID).Return(models.NewIssueList([]*models.Issue{kept}, nil))

	w := makeRequest(router, "DELETE", "/api/v1/issues/"+deleted.ID.String(), nil, authHeader())

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[DeleteResponse](t, w)
	require.Len(t, resp.MyReports.Issues, 1)
	assert.Equal(t, kept.ID, resp.MyReports.Issues[0].ID)
	assert.False(t, resp.MyReports.Issues[0].ShowUpvote)
	assert.Equal(t, "Issue deleted", resp.Toast.Title)
}

func TestDeleteIssue_NotOwner(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()
	expectSession(m, user)
	id := uuid.New()

	m.issues.EXPECT().DeleteIssue(gomock.Any(), id, user.ID).Return(models.ErrIssueNotFound)

	w := makeRequest(router, "DELETE", "/api/v1/issues/"+id.String(), nil, authHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHomePage(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.issues.EXPECT().
		ListIssues(gomock.Any(), models.ListOptions{OrderBy: models.OrderByUpvotes, Limit: 3}).
		Return(models.NewIssueList([]*models.Issue{testIssue(7)}, nil))
	m.votes.EXPECT().VotedIssues(gomock.Any(), nil).Return(models.NewVoteSet(), nil)
	m.issues.EXPECT().MostReported(gomock.Any(), 5).Return([]*models.MostReported{
		{IssueType: "pothole", ReportCount: 4},
		{IssueType: "flooding", ReportCount: 2},
	}, nil)

	w := makeRequest(router, "GET", "/api/v1/pages/home", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HomePageResponse](t, w)
	assert.Nil(t, resp.Viewer)
	assert.Len(t, resp.TopIssues.Issues, 1)
	require.Len(t, resp.MostReported, 2)
	assert.InDelta(t, 50.0, resp.MostReported[1].Percentage, 0.001)
}

func TestHomePage_MostReportedFailureHidesBlock(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.issues.EXPECT().ListIssues(gomock.Any(), gomock.Any()).Return(models.NewIssueList(nil, nil))
	m.votes.EXPECT().VotedIssues(gomock.Any(), nil).Return(models.NewVoteSet(), nil)
	m.issues.EXPECT().MostReported(gomock.Any(), 5).Return(nil, errors.New("view missing"))

	w := makeRequest(router, "GET", "/api/v1/pages/home", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[HomePageResponse](t, w).MostReported)
}

func TestLeaderboardPage(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.issues.EXPECT().
		ListIssues(gomock.Any(), models.ListOptions{OrderBy: models.OrderByUpvotes}).
		Return(models.NewIssueList([]*models.Issue{testIssue(5), testIssue(3), testIssue(3)}, nil))
	m.votes.EXPECT().VotedIssues(gomock.Any(), nil).Return(models.NewVoteSet(), nil)

	w := makeRequest(router, "GET", "/api/v1/pages/leaderboard", nil)

	require.Equal(t, http.StatusOK, w.Code)
	issues := decode[LeaderboardPageResponse](t, w).Issues.Issues
	for i := 1; i < len(issues); i++ {
		assert.GreaterOrEqual(t, issues[i-1].Upvotes, issues[i].Upvotes)
	}
}

func TestMyReportsPage(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()
	expectSession(m, user)

	m.issues.EXPECT().ListByOwner(gomock.Any(), user.ID).Return(models.NewIssueList([]*models.Issue{testIssue(2)}, nil))

	w := makeRequest(router, "GET", "/api/v1/pages/my-reports", nil, authHeader())

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[MyReportsPageResponse](t, w)
	assert.Equal(t, user.ID, resp.Viewer.ID)
	require.Len(t, resp.Issues.Issues, 1)
	assert.False(t, resp.Issues.Issues[0].ShowUpvote)
}

func TestLibraryPage(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/pages/library", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[LibraryPageResponse](t, w).IssueTypes, 8)
}

func TestReportPage_Prefill(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectSession(m, testUser())

	w := makeRequest(router, "GET", "/api/v1/pages/report?issue_type=streetlight", nil, authHeader())

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ReportPageResponse](t, w)
	assert.Equal(t, "Broken Streetlight", resp.Title)
	assert.Equal(t, "streetlight", resp.IssueType)
	assert.Contains(t, resp.Description, "streetlight")
	assert.Equal(t, mapview.DefaultCenter, resp.MapCenter)
	assert.Equal(t, float64(mapview.PickerZoom), resp.MapZoom)
}

func TestReportPage_UnknownType(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectSession(m, testUser())

	w := makeRequest(router, "GET", "/api/v1/pages/report?issue_type=ufo", nil, authHeader())

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ReportPageResponse](t, w)
	assert.Empty(t, resp.Title)
	assert.Empty(t, resp.IssueType)
}

func TestMapPage(t *testing.T) {
	_, m, router := newTestHandler(t)
	first := testIssue(1)
	first.Latitude, first.Longitude = 12.5, 77.1

	m.issues.EXPECT().
		ListIssues(gomock.Any(), models.ListOptions{OrderBy: models.OrderByCreatedAt}).
		Return(models.NewIssueList([]*models.Issue{first, testIssue(0)}, nil))

	w := makeRequest(router, "GET", "/api/v1/pages/map", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[MapPageResponse](t, w)
	require.NotNil(t, resp.Layer)
	assert.Equal(t, mapview.LngLat{77.1, 12.5}, resp.Layer.Center)
	assert.Len(t, resp.Layer.Markers.Features, 2)
}

func TestMapPage_Failed(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.issues.EXPECT().ListIssues(gomock.Any(), gomock.Any()).Return(models.NewIssueList(nil, errors.New("db down")))

	w := makeRequest(router, "GET", "/api/v1/pages/map", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[MapPageResponse](t, w)
	assert.Equal(t, models.ListFailed, resp.Status)
	assert.Nil(t, resp.Layer)
}

func TestMyVotes(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()
	expectSession(m, user)
	id := uuid.New()

	m.votes.EXPECT().VotedIssues(gomock.Any(), user).Return(models.NewVoteSet(id), nil)

	w := makeRequest(router, "GET", "/api/v1/votes/me", nil, authHeader())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uuid.UUID{id}, decode[VotesResponse](t, w).IssueIDs)
}

func TestRegister(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()

	m.auth.EXPECT().Register(gomock.Any(), "Asha", "asha@example.com", "hunter22").Return(user, nil)

	w := makeRequest(router, "POST", "/api/v1/auth/register",
		strings.NewReader(`{"name":"Asha","email":"asha@example.com","password":"hunter22"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, user.ID, decode[UserResponse](t, w).ID)
}

func TestRegister_ValidationError(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/auth/register", strings.NewReader(`{"name":"A","email":"nope","password":"1"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_EmailTaken(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.auth.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, models.ErrEmailTaken)

	w := makeRequest(router, "POST", "/api/v1/auth/register",
		strings.NewReader(`{"name":"Asha","email":"asha@example.com","password":"hunter22"}`))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_SetsCookie(t *testing.T) {
	_, m, router := newTestHandler(t)
	user := testUser()

	m.auth.EXPECT().Login(gomock.Any(), "asha@example.com", "hunter22").Return(user, "jwt-token", nil)

	w := makeRequest(router, "POST", "/api/v1/auth/login", strings.NewReader(`{"email":"asha@example.com","password":"hunter22"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jwt-token", decode[SessionResponse](t, w).Token)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "auth_token=jwt-token")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, "", service.ErrInvalidCredentials)

	w := makeRequest(router, "POST", "/api/v1/auth/login", strings.NewReader(`{"email":"asha@example.com","password":"nope"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, decode[ErrorResponse](t, w).Redirect)
}

func TestLogout(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectSession(m, testUser())

	m.auth.EXPECT().Logout(gomock.Any(), testToken).Return(nil)

	w := makeRequest(router, "POST", "/api/v1/auth/logout", nil, authHeader())

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "auth_token=;")
}

func TestLeaderboardPDF(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.issues.EXPECT().ListIssues(gomock.Any(), gomock.Any()).Return(models.NewIssueList([]*models.Issue{testIssue(4)}, nil))

	w := makeRequest(router, "GET", "/api/v1/exports/leaderboard.pdf", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

// Загруженное фото доступно по публичному адресу без изменений
func TestServeImage_RoundTrip(t *testing.T) {
	_, m, router := newTestHandler(t)
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

	name, err := m.bucket.Upload(context.Background(), "road.png", bytes.NewReader(png))
	require.NoError(t, err)
	publicURL := m.bucket.PublicURL(name)

	w := makeRequest(router, "GET", strings.TrimPrefix(publicURL, "http://localhost:8080"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, png, w.Body.Bytes())
}

func TestServeImage_NotFound(t *testing.T) {
	_, _, router := newTestHandler(t)

	assert.Equal(t, http.StatusNotFound, makeRequest(router, "GET", "/api/v1/storage/issue-images/missing.png", nil).Code)
	assert.Equal(t, http.StatusNotFound, makeRequest(router, "GET", "/api/v1/storage/other/a.png", nil).Code)
}
