package dto

import "time"

type MatchRequestResponse struct {
	ID       int64  `json:"id"`
	MentorID int64  `json:"mentorId"`
	MenteeID int64  `json:"menteeId"`
	Message  string `json:"message"`
	Status   string `json:"status"`
}

type IncomingRequestResponse struct {
	ID          int64     `json:"id"`
	MentorID    int64     `json:"mentorId"`
	MenteeID    int64     `json:"menteeId"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	MenteeName  string    `json:"menteeName"`
	MenteeEmail string    `json:"menteeEmail"`
}

type OutgoingRequestResponse struct {
	ID          int64     `json:"id"`
	MentorID    int64     `json:"mentorId"`
	MenteeID    int64     `json:"menteeId"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	MentorName  string    `json:"mentorName"`
	MentorEmail string    `json:"mentorEmail"`
}
