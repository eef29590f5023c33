package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pomoweb/internal/constants"
	"pomoweb/internal/database"
	"pomoweb/internal/dto"
	"pomoweb/internal/models"
	"pomoweb/internal/repository"
	"pomoweb/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	router      *gin.Engine
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		router:      r,
	}
}

func (env authTestEnv) post(t *testing.T, url string, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "Alice@Example.com",
		"password": "pw123456",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "alice", response.Username)
	require.Equal(t, "alice@example.com", response.Email)
	require.False(t, response.IsAdmin)

	// Plaintext password must never reach storage
	var stored models.User
	require.NoError(t, env.db.First(&stored, response.ID).Error)
	require.NotEqual(t, "pw123456", stored.PasswordHash)
	require.NotContains(t, stored.PasswordHash, "pw123456")
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.post(t, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_DuplicateEmailDifferentCase(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.post(t, "/api/auth/register", map[string]string{
		"username": "bob",
		"email":    "ALICE@EXAMPLE.COM",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pw1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw123456",
	})
	require.NoError(t, err)

	w := env.post(t, "/api/auth/login", map[string]string{
		"identifier": "alice",
		"password":   "pw123456",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User     dto.UserDTO `json:"user"`
		Redirect string      `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "alice", response.User.Username)
	require.Equal(t, constants.UserLandingPath, response.Redirect)
	require.NotEmpty(t, w.Result().Cookies())
}

func TestAuthHandler_Login_ByEmailCaseInsensitive(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw123456",
	})
	require.NoError(t, err)

	w := env.post(t, "/api/auth/login", map[string]string{
		"identifier": "Alice@Example.COM",
		"password":   "pw123456",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Login_AdminRedirect(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Username: "root",
		Email:    "root@example.com",
		Password: "pw123456",
	})
	require.NoError(t, err)
	require.NoError(t, env.db.Model(user).Update("is_admin", true).Error)

	w := env.post(t, "/api/auth/login", map[string]string{
		"identifier": "root",
		"password":   "pw123456",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, constants.AdminLandingPath, response.Redirect)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw123456",
	})
	require.NoError(t, err)

	w := env.post(t, "/api/auth/login", map[string]string{
		"identifier": "alice",
		"password":   "wrongpass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.post(t, "/api/auth/login", map[string]string{
		"identifier": "nobody",
		"password":   "pw123456",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
