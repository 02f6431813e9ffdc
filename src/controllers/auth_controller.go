package controllers

import (
	"Backend-Results/src/middleware"
	"Backend-Results/src/models"
	"Backend-Results/src/services/auth"
	"Backend-Results/src/utils"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type AuthService interface {
	RequestOTP(ctx context.Context, req auth.OTPRequest) error
	Signup(ctx context.Context, req auth.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req auth.LoginRequest, remoteIP string) (*auth.LoginResult, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}

type AuthController struct {
	service AuthService
	log     zerolog.Logger
}

func NewAuthController(service AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{service: service, log: logger}
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
	Name    string `json:"name"`
}

// RequestOTP godoc
// @Summary Request signup OTP
// @Description Generate a one-time code and send it by SMS to the admin phone
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.OTPRequest true "Email to register"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/request-otp [post]
func (ac *AuthController) RequestOTP(c *fiber.Ctx) error {
	var req auth.OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := ac.service.RequestOTP(c.UserContext(), req); err != nil {
		return utils.HandleServiceError(c, ac.log, err)
	}
	return c.JSON(models.MessageResponse{Message: "OTP sent to admin phone."})
}

// Signup godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.SignupRequest true "Signup data with OTP"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var req auth.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if _, err := ac.service.Signup(c.UserContext(), req); err != nil {
		return utils.HandleServiceError(c, ac.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.MessageResponse{Message: "Admin registered successfully"})
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	res, err := ac.service.Login(c.UserContext(), req, c.IP())
	if err != nil {
		return utils.HandleServiceError(c, ac.log, err)
	}

	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	return c.JSON(LoginResponse{
		Message: "Login successful",
		Token:   res.Token,
		Role:    res.User.Role,
		Name:    res.User.Name,
	})
}

// Logout godoc
// @Summary Logout
// @Description Revoke the presented token until it expires
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals(middleware.LocalToken).(string)
	expiry, _ := c.Locals(middleware.LocalTokenExpiry).(time.Time)
	if token == "" {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Access denied. No token provided.")
	}

	if err := ac.service.Logout(c.UserContext(), token, expiry); err != nil {
		return utils.HandleServiceError(c, ac.log, err)
	}
	return c.JSON(models.MessageResponse{Message: "Logged out successfully"})
}
