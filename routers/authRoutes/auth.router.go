package authRoutes

import (
	authControllers "courseflow/controllers/auth"
	"courseflow/middleware"
	authValidators "courseflow/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/authenticate", authValidators.Authenticate(), authControllers.Authenticate)
	authGroup.Get("/profile", middleware.JWTMiddleware, authControllers.Profile)
}
