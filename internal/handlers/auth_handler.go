package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vijay0896/LoanApp/internal/middleware"
	"github.com/vijay0896/LoanApp/internal/services"
	"github.com/vijay0896/LoanApp/internal/utils"
)

type AuthHandler struct {
	svc *services.AuthService
	log *zap.SugaredLogger
}

func NewAuthHandler(svc *services.AuthService, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := utils.ValidateRegistration(req.Username, req.Email, req.Phone, req.Password); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "validation failed", "errors": errs})
	}
	res, err := h.svc.Register(c.UserContext(), req.Username, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			return utils.JSONError(c, fiber.StatusBadRequest, "User already exists")
		}
		h.log.Errorw("register failed", "err", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{
		"msg":    "Register successful",
		"token":  res.Token,
		"userId": res.UserID,
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := utils.ValidateLogin(req.Email, req.Password); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "validation failed", "errors": errs})
	}
	res, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		h.log.Errorw("login failed", "err", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"msg":    "Login successful",
		"token":  res.Token,
		"userId": res.UserID,
	})
}

// GET /api/auth/user
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	user, err := h.svc.CurrentUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.JSONError(c, fiber.StatusUnauthorized, "User not authenticated")
		}
		h.log.Errorw("current user lookup failed", "err", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"username": user.Username,
		"email":    user.Email,
		"phone":    user.Phone,
	})
}

// POST /api/auth/reset-password
//
// Success-shaped whether or not the email exists.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		h.log.Errorw("password reset failed", "err", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"success": true, "message": "If user exists, an email was sent"})
}
