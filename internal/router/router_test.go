package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetmate/internal/pkg"
	"budgetmate/internal/router"
	"budgetmate/internal/service"
	"budgetmate/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type api struct {
	t      *testing.T
	engine *gin.Engine
	auth   *service.AuthService
}

func newAPI(t *testing.T) *api {
	db := testutil.NewDB(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := pkg.NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	auth := service.NewAuthService(db, tokens, nil, nil)
	svc := router.Services{
		Auth:          auth,
		Posts:         service.NewPostService(db, nil, log),
		Notifications: service.NewNotificationService(db),
		Expenses:      service.NewExpenseService(db),
		Earnings:      service.NewEarningService(db),
		Goals:         service.NewGoalService(db),
		Budget:        service.NewBudgetService(db),
		Articles:      service.NewArticleService(db),
		Jobs:          service.NewJobService(db),
	}
	return &api{t: t, engine: router.New(svc, log, prometheus.NewRegistry()), auth: auth}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// signup registers name and returns its access token.
func (a *api) signup(name string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    name + "@example.com",
		"password": "secret123",
		"username": name,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]any](a.t, rec)["token"].(string)
}

func (a *api) admin(name string) string {
	a.t.Helper()
	token := a.signup(name)
	_, err := a.auth.Promote(context.Background(), name+"@example.com")
	require.NoError(a.t, err)
	return token
}

type postBody struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	Likes    []uint64
	Comments []struct {
		ID   uint64 `json:"id"`
		Text string `json:"text"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"comments"`
}

func TestHealthAndMetrics(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "API is running", rec.Body.String())

	rec = a.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `budgetmate_http_requests_total{method="GET",route="/",status="200"} 1`)
}

func TestSignupLoginMe(t *testing.T) {
	a := newAPI(t)
	a.signup("alice")

	rec := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["refreshToken"])

	rec = a.do(http.MethodGet, "/api/auth/me", body["token"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[struct {
		User service.UserRef `json:"user"`
	}](t, rec)
	assert.Equal(t, "alice@example.com", me.User.Email)

	rec = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email/username or password", decode[map[string]any](t, rec)["message"])
}

func TestBearerRequired(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/posts", "", gin.H{"title": "t"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", decode[map[string]any](t, rec)["msg"])

	rec = a.do(http.MethodGet, "/api/budget", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", decode[map[string]any](t, rec)["message"])
}

func TestFeedRoundTrip(t *testing.T) {
	a := newAPI(t)
	alice := a.signup("alice")
	bob := a.signup("bob")

	rec := a.do(http.MethodPost, "/api/posts", alice, gin.H{"title": "First", "content": "hello", "category": "Tips"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	post := decode[postBody](t, rec)

	path := "/api/posts/" + itoa(post.ID)
	rec = a.do(http.MethodPost, path+"/like", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[postBody](t, rec).Likes, 1)

	rec = a.do(http.MethodPost, path+"/comment", bob, gin.H{"text": "nice"})
	require.Equal(t, http.StatusOK, rec.Code)
	post = decode[postBody](t, rec)
	require.Len(t, post.Comments, 1)
	assert.Equal(t, "bob", post.Comments[0].User.Name)

	rec = a.do(http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode[[]postBody](t, rec)
	require.Len(t, feed, 1)
	assert.Equal(t, "First", feed[0].Title)

	rec = a.do(http.MethodPut, "/api/posts/abc", alice, gin.H{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid post id", decode[map[string]any](t, rec)["msg"])

	rec = a.do(http.MethodDelete, "/api/posts/999", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", decode[map[string]any](t, rec)["msg"])
}

func TestEditingOthersCommentIsForbidden(t *testing.T) {
	a := newAPI(t)
	alice := a.signup("alice")
	bob := a.signup("bob")

	post := decode[postBody](t, a.do(http.MethodPost, "/api/posts", alice, gin.H{"title": "T", "content": "c", "category": "k"}))
	path := "/api/posts/" + itoa(post.ID)
	post = decode[postBody](t, a.do(http.MethodPost, path+"/comment", bob, gin.H{"text": "original"}))
	commentPath := path + "/comment/" + itoa(post.Comments[0].ID)

	rec := a.do(http.MethodPut, commentPath, alice, gin.H{"text": "hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized", decode[map[string]any](t, rec)["msg"])

	feed := decode[[]postBody](t, a.do(http.MethodGet, "/api/posts", "", nil))
	require.Len(t, feed[0].Comments, 1)
	assert.Equal(t, "original", feed[0].Comments[0].Text)

	// Post owners cannot remove other people's comments either.
	rec = a.do(http.MethodDelete, commentPath, alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRemovalNotifiesOwner(t *testing.T) {
	a := newAPI(t)
	bob := a.signup("bob")
	admin := a.admin("root")

	post := decode[postBody](t, a.do(http.MethodPost, "/api/posts", bob, gin.H{"title": "Grocery Tips", "content": "c", "category": "Food"}))

	rec := a.do(http.MethodDelete, "/api/posts/"+itoa(post.ID), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Post removed", decode[map[string]any](t, rec)["msg"])

	rec = a.do(http.MethodGet, "/api/notifications", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 1)
	assert.Contains(t, list[0]["message"], "Grocery Tips")
	assert.Equal(t, "warning", list[0]["type"])

	rec = a.do(http.MethodGet, "/api/notifications", admin, nil)
	assert.Empty(t, decode[[]map[string]any](t, rec))
}

func TestCatalogWritesNeedAdmin(t *testing.T) {
	a := newAPI(t)
	alice := a.signup("alice")
	admin := a.admin("root")
	article := gin.H{"title": "Saving 101", "description": "Basics"}

	rec := a.do(http.MethodPost, "/api/articles", alice, article)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied. Admin privileges required.", decode[map[string]any](t, rec)["message"])

	rec = a.do(http.MethodPost, "/api/articles", admin, article)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Article created successfully", decode[map[string]any](t, rec)["message"])

	rec = a.do(http.MethodGet, "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Articles []struct {
			Title    string `json:"title"`
			IconName string `json:"iconName"`
		} `json:"articles"`
	}](t, rec)
	require.Len(t, list.Articles, 1)
	assert.Equal(t, "article", list.Articles[0].IconName)

	rec = a.do(http.MethodPost, "/api/jobs", admin, gin.H{"title": "Tutor", "description": "d", "difficulty": "Impossible"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPost, "/api/auth/admin/create", alice, gin.H{
		"name": "eve", "email": "eve@example.com", "password": "secret123", "confirmPassword": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExpenseLedger(t *testing.T) {
	a := newAPI(t)
	alice := a.signup("alice")
	bob := a.signup("bob")

	rec := a.do(http.MethodPost, "/api/expenses", alice, gin.H{"amount": 12.5, "category": "Food", "date": "2026-03-05"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	expense := decode[map[string]any](t, rec)
	assert.Equal(t, 12.5, expense["amount"])
	id := itoa(uint64(expense["id"].(float64)))

	a.do(http.MethodPost, "/api/expenses", alice, gin.H{"amount": 7.5, "category": "Food", "date": "2026-03-20T10:00:00Z"})
	a.do(http.MethodPost, "/api/expenses", alice, gin.H{"amount": 3, "category": "Bus", "date": "2026-04-01"})

	rec = a.do(http.MethodGet, "/api/expenses/summary?month=2026-03", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := decode[service.ExpenseSummary](t, rec)
	assert.Equal(t, "20", summary.Total.String())
	assert.Equal(t, 2, summary.Count)

	rec = a.do(http.MethodGet, "/api/expenses/summary?month=March", alice, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodDelete, "/api/expenses/"+id, bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodDelete, "/api/expenses/"+id, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Expense removed", decode[map[string]any](t, rec)["msg"])

	rec = a.do(http.MethodPost, "/api/expenses", alice, gin.H{"amount": 1, "category": "Food", "date": "yesterday"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBudgetAndGoals(t *testing.T) {
	a := newAPI(t)
	alice := a.signup("alice")

	rec := a.do(http.MethodPut, "/api/budget", alice, gin.H{"monthlyIncome": 4000, "paymentFrequency": "monthly"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Budget settings updated", decode[map[string]any](t, rec)["message"])

	rec = a.do(http.MethodPost, "/api/budget", alice, gin.H{"paymentFrequency": "hourly"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/api/budget", alice, nil)
	budget := decode[map[string]any](t, rec)
	assert.Equal(t, float64(4000), budget["monthlyIncome"])
	assert.Equal(t, []any{}, budget["spendingCategories"])

	rec = a.do(http.MethodPost, "/api/goals", alice, gin.H{"name": "Trip", "targetAmount": 1000})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	goal := decode[map[string]any](t, rec)
	path := "/api/goals/" + itoa(uint64(goal["id"].(float64)))

	rec = a.do(http.MethodPost, path+"/contribute", alice, gin.H{"amount": 250})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(250), decode[map[string]any](t, rec)["currentAmount"])

	rec = a.do(http.MethodPost, path+"/contribute", alice, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodDelete, path, alice, nil)
	assert.Equal(t, "Goal removed", decode[map[string]any](t, rec)["msg"])
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
