package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-list-api/internal/config"
	"github.com/yukikurage/task-list-api/internal/credential"
	"github.com/yukikurage/task-list-api/internal/database"
	"github.com/yukikurage/task-list-api/internal/logging"
	"github.com/yukikurage/task-list-api/internal/repository"
	"github.com/yukikurage/task-list-api/internal/services"
	"github.com/yukikurage/task-list-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *token.Provider
	authService *services.AuthService
	taskService *services.TaskService
}

func setupTestEnv(t *testing.T, drafter services.TaskDrafter) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(&config.Config{
		DBDriver:    "sqlite",
		DatabaseDSN: ":memory:",
		DBLogLevel:  "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens, err := token.NewProvider("test-secret")
	require.NoError(t, err)

	logger := logging.Discard()
	authService := services.NewAuthService(repository.NewUserRepository(db), credential.NewHasher(bcrypt.MinCost))
	taskService := services.NewTaskService(repository.NewTaskRepository(db), drafter)

	router := NewRouter(RouterDeps{
		AuthHandler: NewAuthHandler(authService, tokens, logger),
		TaskHandler: NewTaskHandler(taskService, logger),
		Tokens:      tokens,
		Logger:      logger,
	})

	return testEnv{
		db:          db,
		router:      router,
		tokens:      tokens,
		authService: authService,
		taskService: taskService,
	}
}

func (e testEnv) do(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func newJSONContext(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func discardLogger() *slog.Logger {
	return logging.Discard()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
