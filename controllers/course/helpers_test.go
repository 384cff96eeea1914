package controllers

import (
	"bytes"
	"courseflow/config"
	"courseflow/database"
	"courseflow/middleware"
	"courseflow/models"
	courseValidator "courseflow/validators/course"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestApp wires the course routes against a fresh in-memory database.
// cache=shared keeps every pooled connection on the same database.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseDependency{},
		&models.UserCourse{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/courses/sort", courseValidator.CourseSchedule(), SortCourses)
	app.Post("/courses/create", middleware.JWTMiddleware, courseValidator.CourseSchedule(), CreateCourses)
	app.Post("/user-courses/start", middleware.JWTMiddleware, courseValidator.UserCourse(), StartCourse)
	app.Post("/user-courses/complete", middleware.JWTMiddleware, courseValidator.UserCourse(), CompleteCourse)
	app.Get("/user-courses/unlockable", GetUnlockableCourses)
	return app
}

func authToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateJWT(uuid.NewString(), "Test User", "test@example.com")
	require.NoError(t, err)
	return token
}

func postJSON(t *testing.T, app *fiber.App, path, token string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getPath(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func createCourse(t *testing.T, name string) models.Course {
	t.Helper()

	course := models.Course{Name: name}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func createDependency(t *testing.T, desired, required models.Course) {
	t.Helper()

	edge := models.CourseDependency{
		DesiredCourseID:  desired.ID,
		RequiredCourseID: required.ID,
	}
	require.NoError(t, database.Database.Db.Create(&edge).Error)
}

func completeForUser(t *testing.T, userID string, course models.Course) {
	t.Helper()

	record := models.UserCourse{UserID: userID, CourseID: course.ID}
	require.NoError(t, database.Database.Db.Create(&record).Error)
	now := record.StartedAt
	record.IsCompleted = true
	record.CompletedAt = &now
	require.NoError(t, database.Database.Db.Save(&record).Error)
}
