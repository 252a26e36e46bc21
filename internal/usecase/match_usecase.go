package usecase

import (
	"context"
	"errors"
	"strings"

	"mentor-match/internal/domain/matchrequest"
	"mentor-match/internal/repository"
)

var (
	ErrMentorNotFound   = errors.New("mentor not found")
	ErrMenteeNotFound   = errors.New("mentee not found")
	ErrDuplicatePending = errors.New("pending match request already exists")
	ErrRequestNotFound  = errors.New("match request not found")
	ErrMessageTooLong   = errors.New("message exceeds maximum length")
	ErrNotRequestOwner  = errors.New("cannot create request for another user")
)

type CreateMatchRequestInput struct {
	MentorID int64
	MenteeID int64
	Message  string
}

type MatchUsecase interface {
	Create(ctx context.Context, actorID int64, in CreateMatchRequestInput) (matchrequest.MatchRequest, error)
	Incoming(ctx context.Context, mentorID int64) ([]repository.IncomingRequest, error)
	Outgoing(ctx context.Context, menteeID int64) ([]repository.OutgoingRequest, error)
	Accept(ctx context.Context, mentorID, requestID int64) (matchrequest.MatchRequest, error)
	Reject(ctx context.Context, mentorID, requestID int64) (matchrequest.MatchRequest, error)
	Cancel(ctx context.Context, menteeID, requestID int64) (matchrequest.MatchRequest, error)
}

type Match struct {
	repo repository.MatchRequestRepository
}

func NewMatchUsecase(repo repository.MatchRequestRepository) *Match {
	return &Match{repo: repo}
}

func (u *Match) Create(ctx context.Context, actorID int64, in CreateMatchRequestInput) (matchrequest.MatchRequest, error) {
	if in.MentorID <= 0 || in.MenteeID <= 0 {
		return matchrequest.MatchRequest{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Message) == "" {
		return matchrequest.MatchRequest{}, ErrInvalidInput
	}
	if len(in.Message) > matchrequest.MaxMessageLength {
		return matchrequest.MatchRequest{}, ErrMessageTooLong
	}
	// A mentee can only file requests on their own behalf.
	if actorID != in.MenteeID {
		return matchrequest.MatchRequest{}, ErrNotRequestOwner
	}

	mr, err := u.repo.CreatePending(ctx, in.MentorID, in.MenteeID, in.Message)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMentorNotFound):
			return matchrequest.MatchRequest{}, ErrMentorNotFound
		case errors.Is(err, repository.ErrMenteeNotFound):
			return matchrequest.MatchRequest{}, ErrMenteeNotFound
		case errors.Is(err, repository.ErrDuplicatePending):
			return matchrequest.MatchRequest{}, ErrDuplicatePending
		default:
			return matchrequest.MatchRequest{}, ErrInternal
		}
	}
	return mr, nil
}

func (u *Match) Incoming(ctx context.Context, mentorID int64) ([]repository.IncomingRequest, error) {
	items, err := u.repo.ListIncoming(ctx, mentorID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Match) Outgoing(ctx context.Context, menteeID int64) ([]repository.OutgoingRequest, error) {
	items, err := u.repo.ListOutgoing(ctx, menteeID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Match) Accept(ctx context.Context, mentorID, requestID int64) (matchrequest.MatchRequest, error) {
	return u.transitionByMentor(ctx, mentorID, requestID, matchrequest.StatusAccepted)
}

func (u *Match) Reject(ctx context.Context, mentorID, requestID int64) (matchrequest.MatchRequest, error) {
	return u.transitionByMentor(ctx, mentorID, requestID, matchrequest.StatusRejected)
}

// A numeric but non-positive id can never match a stored row, so it
// reports not-found like any other lookup miss. Only an unparseable id
// is a validation failure, and the handler rejects that before calling
// here.
func (u *Match) Cancel(ctx context.Context, menteeID, requestID int64) (matchrequest.MatchRequest, error) {
	if requestID <= 0 {
		return matchrequest.MatchRequest{}, ErrRequestNotFound
	}

	mr, err := u.repo.UpdateStatusByMentee(ctx, requestID, menteeID, matchrequest.StatusCancelled)
	if err != nil {
		if errors.Is(err, repository.ErrMatchRequestNotFound) {
			return matchrequest.MatchRequest{}, ErrRequestNotFound
		}
		return matchrequest.MatchRequest{}, ErrInternal
	}
	return mr, nil
}

// A request owned by a different mentor is reported as not found, not
// forbidden, so the endpoint never confirms foreign requests exist.
func (u *Match) transitionByMentor(ctx context.Context, mentorID, requestID int64, status matchrequest.Status) (matchrequest.MatchRequest, error) {
	if requestID <= 0 {
		return matchrequest.MatchRequest{}, ErrRequestNotFound
	}

	mr, err := u.repo.UpdateStatusByMentor(ctx, requestID, mentorID, status)
	if err != nil {
		if errors.Is(err, repository.ErrMatchRequestNotFound) {
			return matchrequest.MatchRequest{}, ErrRequestNotFound
		}
		return matchrequest.MatchRequest{}, ErrInternal
	}
	return mr, nil
}
