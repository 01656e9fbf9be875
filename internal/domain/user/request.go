package user

import (
	"time"

	"github.com/google/uuid"
)

type RequestType string

const (
	RequestSent     RequestType = "SENT"
	RequestReceived RequestType = "RECEIVED"
)

func (t RequestType) Valid() bool {
	return t == RequestSent || t == RequestReceived
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusAccepted RequestStatus = "ACCEPTED"
	StatusRejected RequestStatus = "REJECTED"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

type Location struct {
	Label     string  `json:"location" bson:"location"`
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// HiringRequest is one side of a request pair, stored on the ledger of OwnerID.
// Both sides share ID; the RECEIVED side is the authoritative one.
type HiringRequest struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	Type               RequestType
	Status             RequestStatus
	Date               string
	Schedule           string
	Location           Location
	CounterpartyID     uuid.UUID
	CounterpartyName   string
	CounterpartyAvatar *string
	CounterpartyRating float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RequestPair holds the two mirrored records of one hiring invitation.
type RequestPair struct {
	Sent     HiringRequest
	Received HiringRequest
}

type RequestFilter struct {
	Type   *RequestType
	Status *RequestStatus
}
