package http

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
	"github.com/gkishore1002/TradeFlow-BE/internal/usecase"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

// register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (r *Router) register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.Validationf("invalid payload")
	}

	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	user, token, err := r.auth.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{AccessToken: token, User: user})
}

// login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (r *Router) login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.Validationf("invalid payload")
	}

	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	user, token, err := r.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(AuthResponse{AccessToken: token, User: user})
}

// getProfile godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UserProfile
// @Failure 401 {object} ErrorResponse
// @Router /auth/profile [get]
func (r *Router) getProfile(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 5*time.Second)
	defer cancel()

	profile, err := r.auth.Profile(ctx, currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// updateProfile godoc
// @Summary Update profile fields
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]any true "Fields to update"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/profile [put]
func (r *Router) updateProfile(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return domain.Validationf("invalid payload")
	}

	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	profile, err := r.auth.UpdateProfile(ctx, currentUserID(c), payload)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// deleteProfile godoc
// @Summary Delete the account and everything it owns
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /auth/profile [delete]
func (r *Router) deleteProfile(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	if err := r.auth.DeleteAccount(ctx, currentUserID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "account deleted"})
}

// uploadAvatar godoc
// @Summary Upload a profile avatar
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /auth/profile/avatar [post]
func (r *Router) uploadAvatar(c *fiber.Ctx) error {
	header, err := c.FormFile("avatar")
	if err != nil {
		return domain.Validationf("avatar file required")
	}

	file, err := header.Open()
	if err != nil {
		return domain.Validationf("cannot read uploaded file %q", header.Filename)
	}
	defer file.Close()

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	user, err := r.auth.UploadAvatar(ctx, currentUserID(c), usecase.ImageFile{
		Filename: header.Filename,
		Reader:   file,
	})
	if err != nil {
		return err
	}
	return c.JSON(user)
}
