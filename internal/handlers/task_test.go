package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pomoweb/internal/constants"
	"pomoweb/internal/database"
	"pomoweb/internal/models"
	"pomoweb/internal/repository"
	"pomoweb/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{})
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.handler = NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(suite.db)))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TaskHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(description string, ownerID uint64) *models.Task {
	task := &models.Task{
		Description: description,
		UserID:      ownerID,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create an authenticated XHR context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) setTaskParam(c *gin.Context, taskID uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(taskID, 10)}}
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{
		"description": "write report",
		"estimated":   3,
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "write report", response["description"])
	assert.Equal(suite.T(), float64(3), response["estimated"])
	assert.Equal(suite.T(), false, response["completed"])
	assert.Nil(suite.T(), response["completed_at"])
	assert.Equal(suite.T(), false, response["assigned_by_admin"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_EmptyDescription() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{
		"description": "   ",
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_UnparseableEstimate() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]interface{}{
		"description": "write report",
		"estimated":   "abc",
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored).Error)
	assert.Equal(suite.T(), 1, stored.Estimated)
}

func (suite *TaskHandlerTestSuite) TestListTasks_OnlyOwn() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	suite.createTestTask("alice task", alice.ID)
	suite.createTestTask("bob task", bob.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, alice.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response["tasks"], 1)
	assert.Equal(suite.T(), "alice task", response["tasks"][0]["description"])
}

func (suite *TaskHandlerTestSuite) TestToggleTask_SetsCompletedAt() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("write report", user.ID)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/toggle", nil, user.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.ToggleTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), true, response["success"])
	assert.Equal(suite.T(), true, response["completed"])

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	assert.True(suite.T(), stored.Completed)
	assert.NotNil(suite.T(), stored.CompletedAt)
}

func (suite *TaskHandlerTestSuite) TestToggleTask_TwiceRestoresState() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("write report", user.ID)

	for i := 0; i < 2; i++ {
		c, w := suite.createAuthContext("POST", "/api/tasks/1/toggle", nil, user.ID)
		suite.setTaskParam(c, task.ID)
		suite.handler.ToggleTask(c)
		assert.Equal(suite.T(), http.StatusOK, w.Code)
	}

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	assert.False(suite.T(), stored.Completed)
	assert.Nil(suite.T(), stored.CompletedAt)
}

func (suite *TaskHandlerTestSuite) TestToggleTask_NotOwner() {
	owner := suite.createTestUser("alice")
	other := suite.createTestUser("bob")
	task := suite.createTestTask("write report", owner.ID)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/toggle", nil, other.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.ToggleTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	assert.False(suite.T(), stored.Completed)
}

func (suite *TaskHandlerTestSuite) TestToggleTask_NotFound() {
	user := suite.createTestUser("alice")

	c, w := suite.createAuthContext("POST", "/api/tasks/999/toggle", nil, user.ID)
	suite.setTaskParam(c, 999)

	suite.handler.ToggleTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestToggleTask_FormPostRedirects() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("write report", user.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/tasks/1/toggle", nil)
	req.Header.Set("Referer", "/home")
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.ToggleTask(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), "/home", w.Header().Get("Location"))
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("write report", user.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, user.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_NotOwner() {
	owner := suite.createTestUser("alice")
	other := suite.createTestUser("bob")
	task := suite.createTestTask("write report", owner.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, other.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
