package courseRoutes

import (
	controllers "courseflow/controllers/course"
	"courseflow/middleware"
	validators "courseflow/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the course catalog routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Dependency ordering (pure, no persistence)
	courseGroup.Post("/sort", validators.CourseSchedule(), controllers.SortCourses)

	// Course and prerequisite-edge registration
	courseGroup.Post("/create", middleware.JWTMiddleware, validators.CourseSchedule(), controllers.CreateCourses)
}
