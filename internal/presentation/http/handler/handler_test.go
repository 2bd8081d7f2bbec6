package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/pkg/oauth"
	"github.com/sangkips/gymdesk-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = request.RegisterValidators(v)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func call(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// fakeUsers implements only the lookups the handlers under test reach
type fakeUsers struct {
	repository.UserRepository
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]*entity.User
	touched []uuid.UUID
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id uuid.UUID, _ time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeTasks struct {
	tasks map[uuid.UUID]*entity.HousekeepingTask
	order []uuid.UUID
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{tasks: map[uuid.UUID]*entity.HousekeepingTask{}}
}

func (f *fakeTasks) Create(_ context.Context, task *entity.HousekeepingTask) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	cp := *task
	f.tasks[task.ID] = &cp
	f.order = append(f.order, task.ID)
	return nil
}

func (f *fakeTasks) GetByID(_ context.Context, id uuid.UUID) (*entity.HousekeepingTask, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) Update(_ context.Context, task *entity.HousekeepingTask) error {
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.tasks, id)
	return nil
}

func (f *fakeTasks) List(_ context.Context) ([]entity.HousekeepingTask, error) {
	out := []entity.HousekeepingTask{}
	for i := len(f.order) - 1; i >= 0; i-- {
		if t, ok := f.tasks[f.order[i]]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTasks) ListByAssignee(_ context.Context, userID uuid.UUID) ([]entity.HousekeepingTask, error) {
	out := []entity.HousekeepingTask{}
	for _, id := range f.order {
		if t, ok := f.tasks[id]; ok && t.AssignedTo != nil && *t.AssignedTo == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func housekeepingRouter(tasks *fakeTasks, users *fakeUsers) *gin.Engine {
	h := NewHousekeepingHandler(service.NewHousekeepingService(tasks, users))
	r := gin.New()
	g := r.Group("/housekeeping")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/staff/:staffId", h.ListByStaff)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func TestHousekeepingHandlerLifecycle(t *testing.T) {
	cleaner := &entity.User{ID: uuid.New(), FullName: "Sam Cleaner", Status: "Active"}
	users := &fakeUsers{byID: map[uuid.UUID]*entity.User{cleaner.ID: cleaner}}
	tasks := newFakeTasks()
	r := housekeepingRouter(tasks, users)

	w, env := call(r, http.MethodPost, "/housekeeping",
		`{"category":"Cleaning","title":"  Mop studio 2 ","assigned_to":"`+cleaner.ID.String()+`"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)

	var created struct {
		Task entity.HousekeepingTask `json:"task"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Mop studio 2", created.Task.Title)
	assert.Equal(t, "Pending", created.Task.Status)
	taskPath := "/housekeeping/" + created.Task.ID.String()

	w, env = call(r, http.MethodPatch, taskPath, `{"status":"Completed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated struct {
		Task entity.HousekeepingTask `json:"task"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Completed", updated.Task.Status)
	assert.Equal(t, "Mop studio 2", updated.Task.Title, "absent fields keep their values")

	w, env = call(r, http.MethodGet, "/housekeeping/staff/"+cleaner.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var byStaff struct {
		Tasks []entity.HousekeepingTask `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &byStaff))
	assert.Len(t, byStaff.Tasks, 1)

	w, _ = call(r, http.MethodDelete, taskPath, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = call(r, http.MethodGet, taskPath, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestHousekeepingHandlerRejectsBadInput(t *testing.T) {
	r := housekeepingRouter(newFakeTasks(), &fakeUsers{})

	t.Run("missing required fields", func(t *testing.T) {
		w, env := call(r, http.MethodPost, "/housekeeping", `{"category":"Cleaning"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.Len(t, env.Errors, 1)
		assert.Equal(t, "title", env.Errors[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		w, env := call(r, http.MethodPost, "/housekeeping", `{"category":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", env.Message)
	})

	t.Run("empty body", func(t *testing.T) {
		w, env := call(r, http.MethodPost, "/housekeeping", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Request body is required", env.Message)
	})

	t.Run("unknown assignee", func(t *testing.T) {
		w, _ := call(r, http.MethodPost, "/housekeeping",
			`{"category":"Repairs","title":"Fix treadmill","assigned_to":"`+uuid.NewString()+`"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		w, env := call(r, http.MethodGet, "/housekeeping/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid id", env.Message)
	})

	t.Run("blank title on update", func(t *testing.T) {
		tasks := newFakeTasks()
		task := &entity.HousekeepingTask{Category: "Cleaning", Title: "Towels", Status: "Pending"}
		require.NoError(t, tasks.Create(context.Background(), task))
		r := housekeepingRouter(tasks, &fakeUsers{})

		w, _ := call(r, http.MethodPatch, "/housekeeping/"+task.ID.String(), `{"title":"   "}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestPaginationFromQuery(t *testing.T) {
	tests := []struct {
		query   string
		page    int
		perPage int
		search  string
	}{
		{query: "", page: 1, perPage: 15},
		{query: "page=3&per_page=25&search=anna", page: 3, perPage: 25, search: "anna"},
		{query: "page=-2&per_page=abc", page: 1, perPage: 15},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			p := paginationFromQuery(c)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.perPage, p.PerPage)
			assert.Equal(t, tt.search, p.Search)
		})
	}
}

func TestRequireUserID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := requireUserID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	id := uuid.New()
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user_id", id)
	got, ok := requireUserID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestAuthHandlerLogin(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	branch := uuid.New()

	active := &entity.User{
		ID: uuid.New(), FullName: "Front Desk", Email: "desk@gym.test", Password: hash, Status: "Active", BranchID: &branch,
		Role: entity.Role{Name: entity.RoleStaff, Permissions: []entity.Permission{{Name: entity.PermManageMembers}}},
	}
	disabled := &entity.User{ID: uuid.New(), Email: "gone@gym.test", Password: hash, Status: "Inactive"}
	users := &fakeUsers{byEmail: map[string]*entity.User{active.Email: active, disabled.Email: disabled}}

	jwtManager := utils.NewJWTManager("handler-test-secret", time.Hour, 2*time.Hour)
	authService := service.NewAuthService(users, nil, nil, nil, jwtManager, nil)
	h := NewAuthHandler(authService, nil, false)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.GET("/auth/google", h.GoogleLogin)

	t.Run("issues tokens", func(t *testing.T) {
		w, env := call(r, http.MethodPost, "/auth/login", `{"email":"Desk@Gym.test","password":"correct-horse"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
			ExpiresIn   int64  `json:"expires_in"`
			User        struct {
				Role        string   `json:"role"`
				Permissions []string `json:"permissions"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &body))
		assert.Equal(t, "Bearer", body.TokenType)
		assert.Equal(t, int64(3600), body.ExpiresIn)
		assert.Equal(t, entity.RoleStaff, body.User.Role)

		claims, err := jwtManager.ValidateAccessToken(body.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, active.ID, claims.UserID)
		assert.Equal(t, utils.KindStaff, claims.Kind)
		require.NotNil(t, claims.BranchID)
		assert.Equal(t, branch, *claims.BranchID)
		assert.Contains(t, users.touched, active.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		w, env := call(r, http.MethodPost, "/auth/login", `{"email":"desk@gym.test","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", env.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		w, _ := call(r, http.MethodPost, "/auth/login", `{"email":"who@gym.test","password":"whatever"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("disabled account", func(t *testing.T) {
		w, _ := call(r, http.MethodPost, "/auth/login", `{"email":"gone@gym.test","password":"correct-horse"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		w, env := call(r, http.MethodPost, "/auth/login", `{"email":"desk","password":"x"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotEmpty(t, env.Errors)
		assert.Equal(t, "email", env.Errors[0].Field)
	})

	t.Run("google not configured", func(t *testing.T) {
		w, _ := call(r, http.MethodGet, "/auth/google", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGoogleCallbackRejectsForgedState(t *testing.T) {
	google := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:         "client",
		ClientSecret:     "secret",
		RedirectURL:      "http://api.test/auth/google/callback",
		FrontendErrorURL: "http://app.test/login",
	})
	h := NewAuthHandler(nil, google, false)

	r := gin.New()
	r.GET("/auth/google", h.GoogleLogin)
	r.GET("/auth/google/callback", h.GoogleCallback)

	w, _ := call(r, http.MethodGet, "/auth/google", "")
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	consent, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := consent.Query().Get("state")
	require.NotEmpty(t, state)

	t.Run("state without matching cookie", func(t *testing.T) {
		w, _ := call(r, http.MethodGet, "/auth/google/callback?code=abc&state="+url.QueryEscape(state), "")
		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "http://app.test/login?error=invalid_state", w.Header().Get("Location"))
	})

	t.Run("provider error is forwarded", func(t *testing.T) {
		w, _ := call(r, http.MethodGet, "/auth/google/callback?error=access_denied", "")
		assert.Equal(t, "http://app.test/login?error=access_denied", w.Header().Get("Location"))
	})

	t.Run("tampered state with cookie", func(t *testing.T) {
		forged := state + "x"
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=abc&state="+url.QueryEscape(forged), nil)
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: forged})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "http://app.test/login?error=invalid_state", w.Header().Get("Location"))
	})
}
