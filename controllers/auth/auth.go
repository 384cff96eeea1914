package authController

import (
	"courseflow/database"
	"courseflow/identity"
	"courseflow/middleware"
	"courseflow/models"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Provider is the external identity client. It is wired once at startup and
// swapped for a stub in tests.
var Provider *identity.Client

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Credentials live with the provider; we only keep its account id.
	session, err := Provider.SignUp(reqData.Email, reqData.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "The email address is already in use by another account.", nil)
		}
		log.Printf("Error registering user with identity provider: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An unexpected error occurred while registering the user.", nil)
	}

	newUser := models.User{
		ProviderUID: session.LocalID,
		Email:       reqData.Email,
		Name:        reqData.Name,
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	session, err := Provider.SignInWithPassword(reqData.Email, reqData.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid login credentials", nil)
		}
		log.Printf("Error authenticating with identity provider: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Authentication failed.", nil)
	}

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "User exists with the identity provider but not in the local database.", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token":        token,
		"providerData": session,
		"user":         user,
	})
}

// Authenticate exchanges a provider-issued ID token for a local session,
// creating the local user on first sight.
func Authenticate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAuthenticate").(*struct {
		Token string `json:"token"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	session, err := Provider.Lookup(reqData.Token)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid authentication token.", nil)
		}
		log.Printf("Error verifying provider token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Authentication failed.", nil)
	}

	db := database.Database.Db

	var user models.User
	err = db.Where("provider_uid = ?", session.LocalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		name := session.DisplayName
		if name == "" {
			name = "Unknown"
		}
		user = models.User{
			ProviderUID: session.LocalID,
			Email:       session.Email,
			Name:        name,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error saving user to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Authentication failed.", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Authentication failed.", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User authenticated", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}
