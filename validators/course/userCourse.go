package courseValidator

import (
	"courseflow/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserCourse validates the shared body of /user-courses/start and
// /user-courses/complete.
func UserCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   string `json:"userId"`
			CourseID string `json:"courseId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.UserID) == "" {
			errors["userId"] = "User ID is required!"
		}
		if strings.TrimSpace(reqData.CourseID) == "" {
			errors["courseId"] = "Course ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("reqUserId", strings.TrimSpace(reqData.UserID))
		c.Locals("reqCourseId", strings.TrimSpace(reqData.CourseID))
		return c.Next()
	}
}
