package controllers

import (
	"courseflow/database"
	"courseflow/graph"
	"courseflow/middleware"
	"courseflow/models"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SortedCourse is one entry of the /courses/sort response.
type SortedCourse struct {
	Course string `json:"course"`
	Order  int    `json:"order"`
}

// CreatedCourse is one entry of the /courses/create response payload.
type CreatedCourse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SortCourses returns a valid teaching order for the submitted prerequisite
// pairs. Pure computation, nothing is persisted.
func SortCourses(c *fiber.Ctx) error {
	pairs, ok := c.Locals("validatedCourses").([]graph.CoursePair)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	sorted, err := graph.SortCourses(pairs)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cyclic dependency detected in courses",
		})
	}

	result := make([]SortedCourse, len(sorted))
	for i, name := range sorted {
		result[i] = SortedCourse{Course: name, Order: i}
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// CreateCourses registers course nodes and prerequisite edges. The pair list
// is validated as a whole before any write, and all writes happen inside one
// transaction, so a cyclic submission commits nothing.
func CreateCourses(c *fiber.Ctx) error {
	pairs, ok := c.Locals("validatedCourses").([]graph.CoursePair)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := graph.SortCourses(pairs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cyclic dependency detected in courses",
		})
	}

	tx := database.Database.Db.Begin()
	if tx.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create courses!", nil)
	}

	created := make([]CreatedCourse, 0, len(pairs))
	for _, pair := range pairs {
		required, err := findOrCreateCourse(tx, pair.RequiredCourse)
		if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create courses!", nil)
		}

		desired, err := findOrCreateCourse(tx, pair.DesiredCourse)
		if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create courses!", nil)
		}

		// Edge identity is the resolved entity id pair, not the names.
		var edge models.CourseDependency
		err = tx.Where("desired_course_id = ? AND required_course_id = ?", desired.ID, required.ID).
			First(&edge).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			edge = models.CourseDependency{
				DesiredCourseID:  desired.ID,
				RequiredCourseID: required.ID,
			}
			if err := tx.Create(&edge).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create courses!", nil)
			}
		} else if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create courses!", nil)
		}

		// One entry per input pair; the same desired course may repeat.
		created = append(created, CreatedCourse{ID: desired.ID, Name: desired.Name})
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create courses!", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Courses created successfully",
		"data":    created,
	})
}

func findOrCreateCourse(tx *gorm.DB, name string) (*models.Course, error) {
	var course models.Course
	err := tx.Where("name = ?", name).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		course = models.Course{Name: name}
		if err := tx.Create(&course).Error; err != nil {
			return nil, err
		}
		return &course, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}
