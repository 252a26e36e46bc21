package handler

import (
	"context"
	"errors"
	"strconv"

	"mentor-match/internal/delivery/http/dto"
	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/domain/matchrequest"
	"mentor-match/internal/domain/user"
	"mentor-match/internal/pkg/response"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

type createMatchRequest struct {
	MentorID int64  `json:"mentorId"`
	MenteeID int64  `json:"menteeId"`
	Message  string `json:"message"`
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	menteeOnly := middleware.RequireRole(string(user.RoleMentee))
	mentorOnly := middleware.RequireRole(string(user.RoleMentor))

	r.Post("/match-requests", h.Create, menteeOnly)
	r.Get("/match-requests/incoming", h.Incoming, mentorOnly)
	r.Get("/match-requests/outgoing", h.Outgoing, menteeOnly)
	r.Put("/match-requests/:id/accept", h.Accept, mentorOnly)
	r.Put("/match-requests/:id/reject", h.Reject, mentorOnly)
	r.Delete("/match-requests/:id", h.Cancel, menteeOnly)
}

func (h *MatchHandler) Create(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access token required", nil)
	}

	var req createMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "mentorId, menteeId, and message are required", err)
	}

	mr, err := h.uc.Create(c.Context(), userID, usecase.CreateMatchRequestInput{
		MentorID: req.MentorID,
		MenteeID: req.MenteeID,
		Message:  req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "mentorId, menteeId, and message are required", err)
		case errors.Is(err, usecase.ErrMessageTooLong):
			return middleware.NewAppError(fiber.StatusBadRequest, "Message must be a string with maximum 1000 characters", err)
		case errors.Is(err, usecase.ErrNotRequestOwner):
			return middleware.NewAppError(fiber.StatusForbidden, "Unauthorized: Cannot create request for another user", err)
		case errors.Is(err, usecase.ErrMentorNotFound):
			return middleware.NewAppError(fiber.StatusBadRequest, "Mentor not found", err)
		case errors.Is(err, usecase.ErrMenteeNotFound):
			return middleware.NewAppError(fiber.StatusBadRequest, "Mentee not found", err)
		case errors.Is(err, usecase.ErrDuplicatePending):
			return middleware.NewAppError(fiber.StatusBadRequest, "Pending match request already exists", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.JSON(c, fiber.StatusOK, toMatchResponse(mr))
}

func (h *MatchHandler) Incoming(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access token required", nil)
	}

	items, err := h.uc.Incoming(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	res := make([]dto.IncomingRequestResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.IncomingRequestResponse{
			ID:          it.ID,
			MentorID:    it.MentorID,
			MenteeID:    it.MenteeID,
			Message:     it.Message,
			Status:      string(it.Status),
			CreatedAt:   it.CreatedAt,
			MenteeName:  it.MenteeName,
			MenteeEmail: it.MenteeEmail,
		})
	}
	return response.JSON(c, fiber.StatusOK, res)
}

func (h *MatchHandler) Outgoing(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access token required", nil)
	}

	items, err := h.uc.Outgoing(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	res := make([]dto.OutgoingRequestResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.OutgoingRequestResponse{
			ID:          it.ID,
			MentorID:    it.MentorID,
			MenteeID:    it.MenteeID,
			Message:     it.Message,
			Status:      string(it.Status),
			CreatedAt:   it.CreatedAt,
			MentorName:  it.MentorName,
			MentorEmail: it.MentorEmail,
		})
	}
	return response.JSON(c, fiber.StatusOK, res)
}

func (h *MatchHandler) Accept(c fiber.Ctx) error {
	return h.transition(c, h.uc.Accept)
}

func (h *MatchHandler) Reject(c fiber.Ctx) error {
	return h.transition(c, h.uc.Reject)
}

func (h *MatchHandler) Cancel(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access token required", nil)
	}

	requestID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request ID", err)
	}

	mr, uerr := h.uc.Cancel(c.Context(), userID, requestID)
	if uerr != nil {
		if errors.Is(uerr, usecase.ErrRequestNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Match request not found", uerr)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, uerr)
	}

	return response.JSON(c, fiber.StatusOK, toMatchResponse(mr))
}

// A malformed id on accept/reject is indistinguishable from a missing
// request, matching the not-found contract for ownership misses.
func (h *MatchHandler) transition(c fiber.Ctx, op func(ctx context.Context, mentorID, requestID int64) (matchrequest.MatchRequest, error)) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access token required", nil)
	}

	requestID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Match request not found", err)
	}

	mr, uerr := op(c.Context(), userID, requestID)
	if uerr != nil {
		if errors.Is(uerr, usecase.ErrRequestNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Match request not found", uerr)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, uerr)
	}

	return response.JSON(c, fiber.StatusOK, toMatchResponse(mr))
}

func toMatchResponse(mr matchrequest.MatchRequest) dto.MatchRequestResponse {
	return dto.MatchRequestResponse{
		ID:       mr.ID,
		MentorID: mr.MentorID,
		MenteeID: mr.MenteeID,
		Message:  mr.Message,
		Status:   string(mr.Status),
	}
}
