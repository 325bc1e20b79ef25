package domain

import "time"

type LeadStage string

const (
	StageNew         LeadStage = "new"
	StageContacted   LeadStage = "contacted"
	StageProposal    LeadStage = "proposal"
	StageNegotiation LeadStage = "negotiation"
	StageWon         LeadStage = "won"
	StageLost        LeadStage = "lost"
)

// Stages lists pipeline stages in board order.
var Stages = []LeadStage{StageNew, StageContacted, StageProposal, StageNegotiation, StageWon, StageLost}

func (s LeadStage) Valid() bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

func (s LeadStage) Closed() bool { return s == StageWon || s == StageLost }

type Lead struct {
	ID           int64     `json:"id"`
	HotelID      int64     `json:"hotel_id"`
	Company      string    `json:"company"`
	ContactName  string    `json:"contact_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Stage        LeadStage `json:"stage"`
	ValueCents   int64     `json:"value_cents"`
	Owner        string    `json:"owner,omitempty"`
	NextActionOn Date      `json:"next_action_on"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ActivityKind string

const (
	ActivityNote    ActivityKind = "note"
	ActivityCall    ActivityKind = "call"
	ActivityEmail   ActivityKind = "email"
	ActivityMeeting ActivityKind = "meeting"
)

func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityNote, ActivityCall, ActivityEmail, ActivityMeeting:
		return true
	}
	return false
}

type LeadActivity struct {
	ID        int64        `json:"id"`
	LeadID    int64        `json:"lead_id"`
	Kind      ActivityKind `json:"kind"`
	Body      string       `json:"body"`
	CreatedAt time.Time    `json:"created_at"`
}

type LeadFilter struct {
	HotelID int64
	Stage   *LeadStage
	Owner   string
	Page
}

type StageSummary struct {
	Stage      LeadStage `json:"stage"`
	Count      int       `json:"count"`
	ValueCents int64     `json:"value_cents"`
}
