package courseValidator

import (
	"courseflow/graph"
	"courseflow/middleware"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CourseSchedule validates the shared body of /courses/sort and
// /courses/create: a non-empty list of (desiredCourse, requiredCourse) pairs.
func CourseSchedule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Courses []graph.CoursePair `json:"courses"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Courses) == 0 {
			errors["courses"] = "At least one course pair is required!"
		}

		for i, pair := range reqData.Courses {
			if strings.TrimSpace(pair.DesiredCourse) == "" {
				errors[fmt.Sprintf("courses.%d.desiredCourse", i)] = "Desired course is required!"
			}
			if strings.TrimSpace(pair.RequiredCourse) == "" {
				errors[fmt.Sprintf("courses.%d.requiredCourse", i)] = "Required course is required!"
			}
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourses", reqData.Courses)
		return c.Next()
	}
}
