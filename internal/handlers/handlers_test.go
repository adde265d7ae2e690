package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/auth"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/config"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/constants"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/database"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/observability"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/repository"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/services"
)

type testEnv struct {
	db       *gorm.DB
	logger   *slog.Logger
	prom     *observability.Prom
	tokens   *auth.TokenService
	accounts *services.AccountService
	tasks    *services.TaskService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Connect(&config.Config{AppEnv: "test", DBDriver: config.DriverSQLite}, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens, err := auth.NewTokenService("handlers_test_secret_key", time.Hour)
	require.NoError(t, err)

	return testEnv{
		db:       db,
		logger:   logger,
		prom:     observability.NewProm(prometheus.NewRegistry()),
		tokens:   tokens,
		accounts: services.NewAccountService(repository.NewUserRepository(db), auth.NewBcryptHasher(bcrypt.MinCost), tokens),
		tasks:    services.NewTaskService(repository.NewTaskRepository(db)),
	}
}

// newContext builds a gin context as the auth and task-id middleware would
// leave it. Zero ids are not set.
func newContext(method, url string, body []byte, userID, taskID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != 0 {
		c.Set(constants.ContextKeyUserID, userID)
	}
	if taskID != 0 {
		c.Set(constants.ContextKeyTaskID, taskID)
	}

	return c, w
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return body
}
