package userCourseRoutes

import (
	controllers "courseflow/controllers/course"
	"courseflow/middleware"
	validators "courseflow/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupUserCourseRoutes sets up the per-user enrollment routes
func SetupUserCourseRoutes(app *fiber.App) {
	userCourseGroup := app.Group("/user-courses")

	userCourseGroup.Post("/start", middleware.JWTMiddleware, validators.UserCourse(), controllers.StartCourse)
	userCourseGroup.Post("/complete", middleware.JWTMiddleware, validators.UserCourse(), controllers.CompleteCourse)
	userCourseGroup.Get("/unlockable", controllers.GetUnlockableCourses)
}
