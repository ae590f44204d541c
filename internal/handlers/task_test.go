package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskwise/taskwise-api/internal/constants"
	"github.com/taskwise/taskwise-api/internal/database"
	"github.com/taskwise/taskwise-api/internal/models"
	"github.com/taskwise/taskwise-api/internal/repository"
	"github.com/taskwise/taskwise-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	service *services.TaskService
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	suite.service = services.NewTaskService(taskRepo)

	// No AI service in tests
	suite.handler = NewTaskHandler(suite.service, nil)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, creatorID uint64, assigneeID *uint64) *models.Task {
	task, err := suite.service.CreateTask(services.CreateTaskInput{
		Title:        title,
		CreatorID:    creatorID,
		AssignedToID: assigneeID,
	})
	suite.Require().NoError(err)
	return task
}

// perform routes a request through the handler with the given user injected,
// mirroring what RequireAuth does after validating a token.
func (suite *TaskHandlerTestSuite) perform(method, path string, body []byte, userID uint64) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(constants.ContextKeyUserID, userID)
		}
	})
	r.GET("/api/tasks", suite.handler.ListTasks)
	r.POST("/api/tasks", suite.handler.CreateTask)
	r.GET("/api/tasks/stats", suite.handler.GetDashboardStats)
	r.POST("/api/tasks/generate", suite.handler.GenerateTasks)
	r.GET("/api/tasks/:id", suite.handler.GetTask)
	r.PUT("/api/tasks/:id", suite.handler.UpdateTask)
	r.DELETE("/api/tasks/:id", suite.handler.DeleteTask)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("user@example.com")

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "New Task",
		"description": "Something to do",
	})
	w := suite.perform("POST", "/api/tasks", body, user.ID)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	task := response["task"].(map[string]interface{})
	assert.Equal(suite.T(), "New Task", task["title"])
	assert.Equal(suite.T(), "todo", task["status"])
	assert.Equal(suite.T(), "medium", task["priority"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidTitle() {
	user := suite.createTestUser("user@example.com")

	body, _ := json.Marshal(map[string]interface{}{"title": "ab"})
	w := suite.perform("POST", "/api/tasks", body, user.ID)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidStatus() {
	user := suite.createTestUser("user@example.com")

	body, _ := json.Marshal(map[string]interface{}{
		"title":  "New Task",
		"status": "done",
	})
	w := suite.perform("POST", "/api/tasks", body, user.ID)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_VisibleOnly() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")

	suite.createTestTask("Mine", alice.ID, nil)
	suite.createTestTask("Delegated to me", bob.ID, &alice.ID)
	suite.createTestTask("Not mine", bob.ID, nil)

	w := suite.perform("GET", "/api/tasks", nil, alice.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 2)
	assert.Equal(suite.T(), float64(2), response["count"])
}

func (suite *TaskHandlerTestSuite) TestListTasks_StatusFilter() {
	alice := suite.createTestUser("alice@example.com")

	suite.createTestTask("Open", alice.ID, nil)
	done, err := suite.service.CreateTask(services.CreateTaskInput{
		Title:     "Closed",
		Status:    models.TaskStatusCompleted,
		CreatorID: alice.ID,
	})
	suite.Require().NoError(err)

	w := suite.perform("GET", "/api/tasks?status=completed", nil, alice.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), float64(done.ID), tasks[0].(map[string]interface{})["id"])
}

func (suite *TaskHandlerTestSuite) TestListTasks_InvalidStatus() {
	alice := suite.createTestUser("alice@example.com")

	w := suite.perform("GET", "/api/tasks?status=done", nil, alice.ID)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	alice := suite.createTestUser("alice@example.com")

	w := suite.perform("GET", "/api/tasks/9999", nil, alice.ID)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask_ForbiddenForOutsider() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	task := suite.createTestTask("Private", alice.ID, nil)

	w := suite.perform("GET", fmt.Sprintf("/api/tasks/%d", task.ID), nil, bob.ID)

	// The task exists, so denial is a 403, not a 404
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_PartialUpdate() {
	alice := suite.createTestUser("alice@example.com")
	task := suite.createTestTask("Original", alice.ID, nil)

	body := []byte(`{"status": "in-progress"}`)
	w := suite.perform("PUT", fmt.Sprintf("/api/tasks/%d", task.ID), body, alice.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	updated := response["task"].(map[string]interface{})
	assert.Equal(suite.T(), "in-progress", updated["status"])
	assert.Equal(suite.T(), "Original", updated["title"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NullClearsDueDate() {
	alice := suite.createTestUser("alice@example.com")

	due := time.Now().Add(24 * time.Hour)
	task, err := suite.service.CreateTask(services.CreateTaskInput{
		Title:     "Deadline",
		DueDate:   &due,
		CreatorID: alice.ID,
	})
	suite.Require().NoError(err)

	body := []byte(`{"due_date": null}`)
	w := suite.perform("PUT", fmt.Sprintf("/api/tasks/%d", task.ID), body, alice.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	updated := response["task"].(map[string]interface{})
	assert.Nil(suite.T(), updated["due_date"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NullClearsAssignee() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	task := suite.createTestTask("Delegated", alice.ID, &bob.ID)

	body := []byte(`{"assigned_to_id": null}`)
	w := suite.perform("PUT", fmt.Sprintf("/api/tasks/%d", task.ID), body, alice.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	updated := response["task"].(map[string]interface{})
	assert.Nil(suite.T(), updated["assigned_to_id"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidDate() {
	alice := suite.createTestUser("alice@example.com")
	task := suite.createTestTask("Deadline", alice.ID, nil)

	body := []byte(`{"due_date": "tomorrow"}`)
	w := suite.perform("PUT", fmt.Sprintf("/api/tasks/%d", task.ID), body, alice.ID)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_AssigneeForbidden() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	task := suite.createTestTask("Delegated", alice.ID, &bob.ID)

	w := suite.perform("DELETE", fmt.Sprintf("/api/tasks/%d", task.ID), nil, bob.ID)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_CreatorSucceeds() {
	alice := suite.createTestUser("alice@example.com")
	task := suite.createTestTask("Done with this", alice.ID, nil)

	w := suite.perform("DELETE", fmt.Sprintf("/api/tasks/%d", task.ID), nil, alice.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Task deleted successfully", response["message"])
}

func (suite *TaskHandlerTestSuite) TestGetDashboardStats() {
	alice := suite.createTestUser("alice@example.com")

	suite.createTestTask("Open", alice.ID, nil)
	_, err := suite.service.CreateTask(services.CreateTaskInput{
		Title:     "Urgent",
		Priority:  models.TaskPriorityHigh,
		CreatorID: alice.ID,
	})
	suite.Require().NoError(err)

	w := suite.perform("GET", "/api/tasks/stats", nil, alice.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	stats := response["stats"].(map[string]interface{})
	assert.Equal(suite.T(), float64(2), stats["total"])
	assert.Equal(suite.T(), float64(2), stats["todo"])
	assert.Equal(suite.T(), float64(1), stats["highPriority"])
	assert.Equal(suite.T(), float64(0), stats["overdue"])
}

func (suite *TaskHandlerTestSuite) TestGenerateTasks_Unconfigured() {
	alice := suite.createTestUser("alice@example.com")

	body, _ := json.Marshal(map[string]string{"text": "Plan the launch next week"})
	w := suite.perform("POST", "/api/tasks/generate", body, alice.ID)

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
