// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Version reported by GET /version
const Version = "1.0.1"

// Default prize split for ranks 1, 2 and 3
var DefaultShareSchedule = []uint32{50, 30, 20}

// Distribution payment phases
const (
	PhasePrize    = "prize"
	PhaseLeftover = "leftover"
)

// Live event types
const (
	EventVoteCast      = "vote_cast"
	EventFinalized     = "finalized"
	EventDistributed   = "distributed"
	EventArtistRemoved = "artist_removed"
	EventSubmission    = "submission"
)

// Request types

type CreateCompetitionRequest struct {
	ID              string   `json:"id"`
	Description     string   `json:"description"`
	Token           string   `json:"token"`
	SubmissionStart uint64   `json:"submission_start"`
	SubmissionEnd   uint64   `json:"submission_end"`
	VoteStart       uint64   `json:"vote_start"`
	VoteEnd         uint64   `json:"vote_end"`
	MinVoteTokens   uint64   `json:"min_vote_tokens"`
	ShareSchedule   []uint32 `json:"share_schedule,omitempty"`
}

type UpdateShareScheduleRequest struct {
	ShareSchedule []uint32 `json:"share_schedule"`
}

type SubmitArtRequest struct {
	ArtistName  string `json:"artist_name"`
	ArtworkName string `json:"artwork_name"`
	Description string `json:"description"`
	ImgURL      string `json:"img_url"`
}

// nil fields are left unchanged
type UpdateSubmissionRequest struct {
	ArtworkName *string `json:"artwork_name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type VoteRequest struct {
	Artist string `json:"artist"`
}

type FundPotRequest struct {
	Amount uint64 `json:"amount"`
}

type UpdateAdminsRequest struct {
	Admin1 *string `json:"admin1,omitempty"`
	Admin2 *string `json:"admin2,omitempty"`
}

type ArtistInfoRequest struct {
	Name     string    `json:"name"`
	Bio      string    `json:"bio"`
	ImgURL   string    `json:"img_url"`
	Website  string    `json:"website"`
	Mediums  []Medium  `json:"mediums"`
	Networks []Network `json:"networks"`
}

// nil fields are left unchanged
type UpdateArtistInfoRequest struct {
	Name     *string    `json:"name,omitempty"`
	Bio      *string    `json:"bio,omitempty"`
	ImgURL   *string    `json:"img_url,omitempty"`
	Website  *string    `json:"website,omitempty"`
	Mediums  *[]Medium  `json:"mediums,omitempty"`
	Networks *[]Network `json:"networks,omitempty"`
}

// Response types

type CreateCompetitionResponse struct {
	ID string `json:"id"`
}

type DeleteCompetitionResponse struct {
	ID       string `json:"id"`
	Refunded uint64 `json:"refunded"`
}

type PotResponse struct {
	Pot uint64 `json:"pot"`
}

type MinVoteTokensResponse struct {
	MinVoteTokens uint64 `json:"min_vote_tokens"`
}

type HasVotedResponse struct {
	HasVoted bool    `json:"has_voted"`
	Artist   *string `json:"artist,omitempty"`
}

type HasRegisteredResponse struct {
	Registered bool `json:"registered"`
}

type PayoutResponse struct {
	Distributed bool                `json:"distributed"`
	Report      *DistributionReport `json:"report,omitempty"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

// Domain types

type Submission struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type ArtworkMetadata struct {
	ArtworkName string `json:"artwork_name"`
	Description string `json:"description"`
	ImgURL      string `json:"img_url"`
}

// Competition is the full aggregate for one competition. Timestamps are
// unix seconds; Pot and MinVoteTokens are whole token units.
type Competition struct {
	ID              string                       `json:"id"`
	Description     string                       `json:"description"`
	Token           string                       `json:"token"`
	SubmissionStart uint64                       `json:"submission_start"`
	SubmissionEnd   uint64                       `json:"submission_end"`
	VoteStart       uint64                       `json:"vote_start"`
	VoteEnd         uint64                       `json:"vote_end"`
	MinVoteTokens   uint64                       `json:"min_vote_tokens"`
	Artists         []Submission                 `json:"artists"`
	Votes           map[string]uint64            `json:"votes"`
	VoteLog         map[string]string            `json:"vote_log"`
	Finalized       bool                         `json:"finalized"`
	Winner          *string                      `json:"winner,omitempty"`
	Pot             uint64                       `json:"pot"`
	ArtistMetadata  map[string][]ArtworkMetadata `json:"artist_metadata"`
	ShareSchedule   []uint32                     `json:"share_schedule"`
}

// ArtistAddress returns the address that submitted under name
func (c Competition) ArtistAddress(name string) (string, bool) {
	for _, a := range c.Artists {
		if a.Name == name {
			return a.Address, true
		}
	}
	return "", false
}

type CompetitionStatus struct {
	ID                 string      `json:"id"`
	Competition        Competition `json:"competition"`
	IsSubmissionActive bool        `json:"is_submission_active"`
	IsVotingActive     bool        `json:"is_voting_active"`
	IsFinalized        bool        `json:"is_finalized"`
}

type VotingEligibility struct {
	CanVote        bool   `json:"can_vote"`
	HasVoted       bool   `json:"has_voted"`
	CurrentBalance uint64 `json:"current_balance"`
	MinRequired    uint64 `json:"min_required"`
	VotingActive   bool   `json:"voting_active"`
}

type ArtistRanking struct {
	Artist   string `json:"artist"`
	Votes    uint64 `json:"votes"`
	Rank     uint32 `json:"rank"`
	IsWinner bool   `json:"is_winner"`
}

type VoteRecord struct {
	ID            string `json:"id"`
	CompetitionID string `json:"competition_id"`
	Voter         string `json:"voter"`
	Artist        string `json:"artist"`
	Timestamp     uint64 `json:"timestamp"`
}

type ArtistArtwork struct {
	Artist  string          `json:"artist"`
	Artwork ArtworkMetadata `json:"artwork"`
}

type Medium struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Network struct {
	Name    string `json:"name"`
	ChainID string `json:"chain_id"`
}

type ArtistProfile struct {
	Address                  string    `json:"address"`
	Registered               bool      `json:"registered"`
	Name                     string    `json:"name"`
	Bio                      string    `json:"bio"`
	ImgURL                   string    `json:"img_url"`
	Website                  string    `json:"website"`
	Mediums                  []Medium  `json:"mediums"`
	Networks                 []Network `json:"networks"`
	CompetitionsParticipated uint32    `json:"competitions_participated"`
	CompetitionsWon          uint32    `json:"competitions_won"`
}

// Admins holds the two administrator slots
type Admins struct {
	Admin1 string `json:"admin1"`
	Admin2 string `json:"admin2"`
}

// IsAdmin reports whether identity occupies either slot
func (a Admins) IsAdmin(identity string) bool {
	if identity == "" {
		return false
	}
	return identity == a.Admin1 || identity == a.Admin2
}

// Payment is one attempted transfer in a distribution pass.
// Amount is whole units, MinorAmount is what was sent to the token service.
type Payment struct {
	Artist      string `json:"artist"`
	Address     string `json:"address"`
	Phase       string `json:"phase"`
	Amount      uint64 `json:"amount"`
	MinorAmount uint64 `json:"minor_amount"`
	Paid        bool   `json:"paid"`
	Error       string `json:"error,omitempty"`
}

type DistributionReport struct {
	ID            string    `json:"id"`
	CompetitionID string    `json:"competition_id"`
	Pot           uint64    `json:"pot"`
	Decimals      uint32    `json:"decimals"`
	Payments      []Payment `json:"payments"`
	TotalPaid     uint64    `json:"total_paid"`
	Leftover      uint64    `json:"leftover"`
	LeftoverPaid  uint64    `json:"leftover_paid"`
	Failed        int       `json:"failed"`
	DistributedAt uint64    `json:"distributed_at"`
}

// LiveEvent is pushed to websocket subscribers of a competition
type LiveEvent struct {
	Type          string      `json:"type"`
	CompetitionID string      `json:"competition_id"`
	Payload       interface{} `json:"payload,omitempty"`
}

type VoteCastPayload struct {
	Artist string `json:"artist"`
	Votes  uint64 `json:"votes"`
}

type FinalizedPayload struct {
	Winner *string `json:"winner,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
