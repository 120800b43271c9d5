// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateCompetitionRequest: id, windows, token, pot schedule, min_vote_tokens
  - UpdateShareScheduleRequest: share_schedule
  - SubmitArtRequest / UpdateSubmissionRequest: artwork metadata
  - VoteRequest: artist
  - FundPotRequest: amount in whole token units
  - UpdateAdminsRequest: optional admin_1, admin_2
  - ArtistInfoRequest / UpdateArtistInfoRequest: profile fields

# Response Types

  - CreateCompetitionResponse, DeleteCompetitionResponse
  - PotResponse, MinVoteTokensResponse
  - HasVotedResponse, HasRegisteredResponse
  - PayoutResponse: distributed flag and report
  - VersionResponse, ErrorResponse

# Domain Types

  - Competition: windows, pot, schedule, votes and finalization state
  - CompetitionStatus: a competition with its open windows
  - Submission, ArtworkMetadata, ArtistArtwork: entries
  - VoteRecord, VotingEligibility, ArtistRanking: voting
  - DistributionReport, Payment: payout audit trail
  - ArtistProfile, Medium, Network: the artist registry
  - Admins: the two admin slots
  - LiveEvent and its payloads: realtime feed

# Constants

Payment phases:

	PhasePrize    = "prize"
	PhaseLeftover = "leftover"

Live event types:

	EventVoteCast, EventFinalized, EventDistributed,
	EventArtistRemoved, EventSubmission

DefaultShareSchedule splits the pot 50/30/20 when a competition is
created without one.
*/
package models
