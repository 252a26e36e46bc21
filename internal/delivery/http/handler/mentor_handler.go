package handler

import (
	"mentor-match/internal/delivery/http/dto"
	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/domain/user"
	"mentor-match/internal/pkg/response"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MentorHandler struct {
	uc usecase.MentorUsecase
}

func NewMentorHandler(uc usecase.MentorUsecase) *MentorHandler {
	return &MentorHandler{uc: uc}
}

func (h *MentorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/mentors", h.List, middleware.RequireRole(string(user.RoleMentee)))
}

func (h *MentorHandler) List(c fiber.Ctx) error {
	skill := c.Query("skill")
	orderBy := c.Query("order_by")

	items, err := h.uc.ListMentors(c.Context(), skill, orderBy)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	res := make([]dto.UserResponse, 0, len(items))
	for _, it := range items {
		skills := it.Skills
		if skills == nil {
			skills = []string{}
		}
		res = append(res, dto.UserResponse{
			ID:    it.ID,
			Email: it.Email,
			Role:  "mentor",
			Profile: dto.ProfileBody{
				Name:     it.Name,
				Bio:      it.Bio,
				ImageURL: it.ImageURL,
				Skills:   &skills,
			},
		})
	}

	return response.JSON(c, fiber.StatusOK, res)
}
