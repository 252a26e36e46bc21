package repository

import (
	"context"
	"errors"
	"time"

	"mentor-match/internal/database"
	"mentor-match/internal/domain/matchrequest"
)

var (
	ErrMatchRequestNotFound = errors.New("match request not found")
	ErrDuplicatePending     = errors.New("pending match request already exists")
	ErrMentorNotFound       = errors.New("mentor not found")
	ErrMenteeNotFound       = errors.New("mentee not found")
)

// IncomingRequest is a request joined with the requesting mentee.
type IncomingRequest struct {
	ID          int64
	MentorID    int64
	MenteeID    int64
	Message     string
	Status      matchrequest.Status
	CreatedAt   time.Time
	MenteeName  string
	MenteeEmail string
}

// OutgoingRequest is a request joined with the targeted mentor.
type OutgoingRequest struct {
	ID          int64
	MentorID    int64
	MenteeID    int64
	Message     string
	Status      matchrequest.Status
	CreatedAt   time.Time
	MentorName  string
	MentorEmail string
}

type MatchRequestRepository interface {
	CreatePending(ctx context.Context, mentorID, menteeID int64, message string) (matchrequest.MatchRequest, error)
	ListIncoming(ctx context.Context, mentorID int64) ([]IncomingRequest, error)
	ListOutgoing(ctx context.Context, menteeID int64) ([]OutgoingRequest, error)
	UpdateStatusByMentor(ctx context.Context, id, mentorID int64, status matchrequest.Status) (matchrequest.MatchRequest, error)
	UpdateStatusByMentee(ctx context.Context, id, menteeID int64, status matchrequest.Status) (matchrequest.MatchRequest, error)
}

type PostgresMatchRequestRepository struct {
	db database.DB
}

func NewPostgresMatchRequestRepository(db database.DB) *PostgresMatchRequestRepository {
	return &PostgresMatchRequestRepository{db: db}
}

// CreatePending verifies both parties and the at-most-one-pending rule
// and inserts the new row, all inside one transaction. The partial
// unique index on pending rows backstops the race between two
// concurrent creates for the same pair; the loser surfaces here as a
// unique violation.
func (r *PostgresMatchRequestRepository) CreatePending(ctx context.Context, mentorID, menteeID int64, message string) (matchrequest.MatchRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return matchrequest.MatchRequest{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var exists bool
	row := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND role = 'mentor')`,
		mentorID,
	)
	if err := row.Scan(&exists); err != nil {
		return matchrequest.MatchRequest{}, err
	}
	if !exists {
		return matchrequest.MatchRequest{}, ErrMentorNotFound
	}

	row = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND role = 'mentee')`,
		menteeID,
	)
	if err := row.Scan(&exists); err != nil {
		return matchrequest.MatchRequest{}, err
	}
	if !exists {
		return matchrequest.MatchRequest{}, ErrMenteeNotFound
	}

	row = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM match_requests WHERE mentor_id = $1 AND mentee_id = $2 AND status = 'pending')`,
		mentorID, menteeID,
	)
	if err := row.Scan(&exists); err != nil {
		return matchrequest.MatchRequest{}, err
	}
	if exists {
		return matchrequest.MatchRequest{}, ErrDuplicatePending
	}

	var mr matchrequest.MatchRequest
	var status string
	row = tx.QueryRow(ctx,
		`INSERT INTO match_requests (mentor_id, mentee_id, message, status)
		 VALUES ($1, $2, $3, 'pending')
		 RETURNING id, mentor_id, mentee_id, COALESCE(message, ''), status, created_at, updated_at`,
		mentorID, menteeID, message,
	)
	if err := row.Scan(&mr.ID, &mr.MentorID, &mr.MenteeID, &mr.Message, &status, &mr.CreatedAt, &mr.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return matchrequest.MatchRequest{}, ErrDuplicatePending
		}
		return matchrequest.MatchRequest{}, err
	}
	mr.Status = matchrequest.Status(status)

	if err := tx.Commit(ctx); err != nil {
		return matchrequest.MatchRequest{}, err
	}
	return mr, nil
}

func (r *PostgresMatchRequestRepository) ListIncoming(ctx context.Context, mentorID int64) ([]IncomingRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT mr.id, mr.mentor_id, mr.mentee_id, COALESCE(mr.message, ''), mr.status, mr.created_at,
		        COALESCE(u.name, ''), u.email
		 FROM match_requests mr
		 JOIN users u ON u.id = mr.mentee_id
		 WHERE mr.mentor_id = $1
		 ORDER BY mr.created_at DESC`,
		mentorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]IncomingRequest, 0)
	for rows.Next() {
		var it IncomingRequest
		var status string
		if err := rows.Scan(&it.ID, &it.MentorID, &it.MenteeID, &it.Message, &status, &it.CreatedAt, &it.MenteeName, &it.MenteeEmail); err != nil {
			return nil, err
		}
		it.Status = matchrequest.Status(status)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRequestRepository) ListOutgoing(ctx context.Context, menteeID int64) ([]OutgoingRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT mr.id, mr.mentor_id, mr.mentee_id, COALESCE(mr.message, ''), mr.status, mr.created_at,
		        COALESCE(u.name, ''), u.email
		 FROM match_requests mr
		 JOIN users u ON u.id = mr.mentor_id
		 WHERE mr.mentee_id = $1
		 ORDER BY mr.created_at DESC`,
		menteeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OutgoingRequest, 0)
	for rows.Next() {
		var it OutgoingRequest
		var status string
		if err := rows.Scan(&it.ID, &it.MentorID, &it.MenteeID, &it.Message, &status, &it.CreatedAt, &it.MentorName, &it.MentorEmail); err != nil {
			return nil, err
		}
		it.Status = matchrequest.Status(status)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRequestRepository) UpdateStatusByMentor(ctx context.Context, id, mentorID int64, status matchrequest.Status) (matchrequest.MatchRequest, error) {
	return r.updateStatus(ctx, `mentor_id`, id, mentorID, status)
}

func (r *PostgresMatchRequestRepository) UpdateStatusByMentee(ctx context.Context, id, menteeID int64, status matchrequest.Status) (matchrequest.MatchRequest, error) {
	return r.updateStatus(ctx, `mentee_id`, id, menteeID, status)
}

// updateStatus folds ownership into the WHERE clause: a request owned
// by someone else scans as no rows, indistinguishable from a missing
// id. The transition itself is unconditional with respect to the
// current status.
func (r *PostgresMatchRequestRepository) updateStatus(ctx context.Context, ownerColumn string, id, ownerID int64, status matchrequest.Status) (matchrequest.MatchRequest, error) {
	var mr matchrequest.MatchRequest
	var st string
	row := r.db.QueryRow(ctx,
		`UPDATE match_requests
		 SET status = $1, updated_at = now()
		 WHERE id = $2 AND `+ownerColumn+` = $3
		 RETURNING id, mentor_id, mentee_id, COALESCE(message, ''), status, created_at, updated_at`,
		string(status), id, ownerID,
	)
	if err := row.Scan(&mr.ID, &mr.MentorID, &mr.MenteeID, &mr.Message, &st, &mr.CreatedAt, &mr.UpdatedAt); err != nil {
		if isNoRows(err) {
			return matchrequest.MatchRequest{}, ErrMatchRequestNotFound
		}
		return matchrequest.MatchRequest{}, err
	}
	mr.Status = matchrequest.Status(st)
	return mr, nil
}
