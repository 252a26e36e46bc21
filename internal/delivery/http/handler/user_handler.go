package handler

import (
	"encoding/base64"
	"errors"
	"strconv"

	"mentor-match/internal/delivery/http/dto"
	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/pkg/response"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateProfileRequest struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Bio    string   `json:"bio"`
	Image  *string  `json:"image"`
	Skills []string `json:"skills"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/profile", h.UpdateProfile)
	r.Get("/images/:role/:id", h.GetImage)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access token required", nil)
	}

	prof, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusOK, toUserResponse(prof))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access token required", nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "id and name are required", err)
	}

	// Image travels as base64 in the JSON body; absent or null clears
	// the stored bytes.
	var image []byte
	if req.Image != nil && *req.Image != "" {
		decoded, err := base64.StdEncoding.DecodeString(*req.Image)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid image encoding", err)
		}
		image = decoded
	}

	prof, err := h.uc.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		ID:     req.ID,
		Name:   req.Name,
		Bio:    req.Bio,
		Image:  image,
		Role:   req.Role,
		Skills: req.Skills,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "id and name are required", err)
		case errors.Is(err, usecase.ErrInvalidRole):
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid role. Must be mentor or mentee", err)
		case errors.Is(err, usecase.ErrForbidden):
			return middleware.NewAppError(fiber.StatusForbidden, "Unauthorized: Cannot update another user profile", err)
		case errors.Is(err, usecase.ErrNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.JSON(c, fiber.StatusOK, toUserResponse(prof))
}

func (h *UserHandler) GetImage(c fiber.Ctx) error {
	role := c.Params("role")
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Image not found", err)
	}

	img, uerr := h.uc.GetImage(c.Context(), role, id)
	if uerr != nil {
		switch {
		case errors.Is(uerr, usecase.ErrInvalidRole):
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid role", uerr)
		case errors.Is(uerr, usecase.ErrImageNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Image not found", uerr)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, uerr)
		}
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Status(fiber.StatusOK).Send(img)
}

func toUserResponse(p usecase.Profile) dto.UserResponse {
	res := dto.UserResponse{
		ID:    p.ID,
		Email: p.Email,
		Role:  string(p.Role),
		Profile: dto.ProfileBody{
			Name:     p.Name,
			Bio:      p.Bio,
			ImageURL: p.ImageURL,
		},
	}
	if p.Skills != nil {
		skills := p.Skills
		res.Profile.Skills = &skills
	}
	return res
}
