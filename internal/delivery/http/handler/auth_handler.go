package handler

import (
	"errors"

	"mentor-match/internal/delivery/http/dto"
	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/pkg/response"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type signupRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "All fields are required", err)
	}

	userID, err := h.uc.Signup(c.Context(), usecase.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
		Bio:      req.Bio,
		Skills:   req.Skills,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			return middleware.NewAppError(fiber.StatusBadRequest, "All fields are required", err)
		case errors.Is(err, usecase.ErrInvalidRole):
			return middleware.NewAppError(fiber.StatusBadRequest, "Role must be mentor or mentee", err)
		case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
			return middleware.NewAppError(fiber.StatusBadRequest, "User already exists", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.JSON(c, fiber.StatusCreated, dto.SignupResponse{
		Message: "User created successfully",
		UserID:  userID,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Email and password are required", err)
	}

	token, err := h.uc.Login(c.Context(), usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			return middleware.NewAppError(fiber.StatusBadRequest, "Email and password are required", err)
		case errors.Is(err, usecase.ErrInvalidCredentials):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.JSON(c, fiber.StatusOK, dto.LoginResponse{Token: token})
}
