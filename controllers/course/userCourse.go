package controllers

import (
	"courseflow/database"
	"courseflow/middleware"
	"courseflow/models"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StartCourse creates an active enrollment for the user. A user can hold at
// most one active course at a time, and every prerequisite of the requested
// course must already be completed by that user.
func StartCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("reqUserId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	courseID, ok := c.Locals("reqCourseId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Single active course is a global rule for the user, not per course.
	var active models.UserCourse
	if err := db.Where("user_id = ? AND is_completed = ?", userID, false).First(&active).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "You already have an active course.",
		})
	}

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Course not found!",
		})
	}

	var dependencies []models.CourseDependency
	if err := db.Where("desired_course_id = ?", courseID).Find(&dependencies).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start course!", nil)
	}

	for _, dependency := range dependencies {
		var completed models.UserCourse
		err := db.Where("user_id = ? AND course_id = ? AND is_completed = ?",
			userID, dependency.RequiredCourseID, true).First(&completed).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "You must complete all prerequisites to start this course.",
			})
		}
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start course!", nil)
		}
	}

	userCourse := models.UserCourse{
		UserID:      userID,
		CourseID:    courseID,
		IsCompleted: false,
		StartedAt:   time.Now(),
	}
	if err := db.Create(&userCourse).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start course!", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course started successfully",
		"course":  userCourse,
	})
}

// CompleteCourse marks the user's active enrollment in the given course as
// completed. The same record is updated, never a new one.
func CompleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("reqUserId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	courseID, ok := c.Locals("reqCourseId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var userCourse models.UserCourse
	err := db.Where("user_id = ? AND course_id = ? AND is_completed = ?",
		userID, courseID, false).First(&userCourse).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No active course found to complete.",
		})
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete course!", nil)
	}

	now := time.Now()
	userCourse.IsCompleted = true
	userCourse.CompletedAt = &now

	if err := db.Save(&userCourse).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete course!", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Course completed successfully",
		"course":  userCourse,
	})
}

// GetUnlockableCourses lists the courses a user may consider starting next.
// With no completions it returns every course without prerequisites.
// Otherwise it returns courses reachable through at least one completed
// prerequisite edge, excluding courses already completed. Note this is an
// any-prerequisite query and is deliberately looser than the all-prerequisite
// rule StartCourse enforces.
func GetUnlockableCourses(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "User ID is required",
		})
	}

	db := database.Database.Db

	var completedIDs []string
	if err := db.Model(&models.UserCourse{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Pluck("course_id", &completedIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch unlockable courses!", nil)
	}

	var courses []models.Course
	if len(completedIDs) == 0 {
		err := db.
			Joins("LEFT JOIN course_dependencies ON course_dependencies.desired_course_id = courses.id").
			Where("course_dependencies.id IS NULL").
			Find(&courses).Error
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch unlockable courses!", nil)
		}
	} else {
		err := db.
			Distinct("courses.*").
			Joins("JOIN course_dependencies ON course_dependencies.desired_course_id = courses.id").
			Where("course_dependencies.required_course_id IN ?", completedIDs).
			Where("courses.id NOT IN ?", completedIDs).
			Find(&courses).Error
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch unlockable courses!", nil)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Unlockable courses retrieved successfully",
		"courses": courses,
	})
}
