// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/easel/models"
)

// SubmitArt enters an artist into a competition during its submission
// window. Artist names are unique within a competition.
func (s *Service) SubmitArt(ctx context.Context, id, from string, req models.SubmitArtRequest) error {
	if err := s.auth.Require(ctx, from); err != nil {
		return err
	}
	if req.ArtistName == "" {
		return fmt.Errorf("%w: artist name is required", ErrInvalidInput)
	}
	if req.ArtworkName == "" {
		return fmt.Errorf("%w: artwork name is required", ErrInvalidInput)
	}

	unlock := s.locks.lock(id)
	defer unlock()

	err := s.store.WithTx(ctx, func(tx Store) error {
		comp, err := tx.GetCompetition(ctx, id)
		if err != nil {
			return err
		}

		if !submissionActive(comp, s.clock.Now()) {
			return fmt.Errorf("%w: submissions are closed", ErrStateViolation)
		}
		if _, taken := comp.ArtistAddress(req.ArtistName); taken {
			return fmt.Errorf("%w: artist %s", ErrAlreadyExists, req.ArtistName)
		}

		comp.Artists = append(comp.Artists, models.Submission{Address: from, Name: req.ArtistName})
		comp.ArtistMetadata[req.ArtistName] = append(comp.ArtistMetadata[req.ArtistName], models.ArtworkMetadata{
			ArtworkName: req.ArtworkName,
			Description: req.Description,
			ImgURL:      req.ImgURL,
		})
		return tx.SaveCompetition(ctx, comp)
	})
	if err != nil {
		return err
	}

	s.logger.Info("art submitted", "competition_id", id, "artist", req.ArtistName, "address", from)
	s.publish(models.EventSubmission, id, models.Submission{Address: from, Name: req.ArtistName})
	return nil
}

// UpdateSubmissionMetadata edits the first artwork of a submission. Only
// the submitting address may edit it.
func (s *Service) UpdateSubmissionMetadata(ctx context.Context, id, from, artist string, req models.UpdateSubmissionRequest) (models.ArtworkMetadata, error) {
	if err := s.auth.Require(ctx, from); err != nil {
		return models.ArtworkMetadata{}, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	var updated models.ArtworkMetadata
	err := s.store.WithTx(ctx, func(tx Store) error {
		comp, err := tx.GetCompetition(ctx, id)
		if err != nil {
			return err
		}
		if comp.Finalized {
			return fmt.Errorf("%w: competition is finalized", ErrStateViolation)
		}

		address, ok := comp.ArtistAddress(artist)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownArtist, artist)
		}
		if address != from {
			return fmt.Errorf("%w: %s did not submit %s", ErrUnauthorized, from, artist)
		}

		works := comp.ArtistMetadata[artist]
		if len(works) == 0 {
			return fmt.Errorf("%w: artwork for %s", ErrNotFound, artist)
		}
		if req.ArtworkName != nil {
			works[0].ArtworkName = *req.ArtworkName
		}
		if req.Description != nil {
			works[0].Description = *req.Description
		}
		updated = works[0]
		return tx.SaveCompetition(ctx, comp)
	})
	if err != nil {
		return models.ArtworkMetadata{}, err
	}

	s.logger.Info("submission updated", "competition_id", id, "artist", artist)
	return updated, nil
}

// RemoveArtist drops a submission with its votes and artwork. Voters who
// chose the artist may vote again. The artist's registry profile is removed
// as well.
func (s *Service) RemoveArtist(ctx context.Context, from, id, artist string) error {
	if err := s.requireAdmin(ctx, from); err != nil {
		return err
	}

	unlock := s.locks.lock(id)
	defer unlock()
	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	var freed int
	err := s.store.WithTx(ctx, func(tx Store) error {
		comp, err := tx.GetCompetition(ctx, id)
		if err != nil {
			return err
		}
		if comp.Finalized {
			return fmt.Errorf("%w: competition is finalized", ErrStateViolation)
		}

		address, ok := comp.ArtistAddress(artist)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownArtist, artist)
		}

		kept := comp.Artists[:0]
		for _, a := range comp.Artists {
			if a.Name != artist {
				kept = append(kept, a)
			}
		}
		comp.Artists = kept
		delete(comp.Votes, artist)
		delete(comp.ArtistMetadata, artist)
		for voter, choice := range comp.VoteLog {
			if choice == artist {
				delete(comp.VoteLog, voter)
				freed++
			}
		}

		if err := tx.SaveCompetition(ctx, comp); err != nil {
			return err
		}
		if err := tx.DeleteVoteRecords(ctx, id, artist); err != nil {
			return err
		}

		err = tx.DeleteProfile(ctx, address)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("artist removed", "competition_id", id, "artist", artist, "voters_freed", freed)
	s.publish(models.EventArtistRemoved, id, models.Submission{Name: artist})
	return nil
}

// GetCompArtists lists every submitted artwork in submission order
func (s *Service) GetCompArtists(ctx context.Context, id string) ([]models.ArtistArtwork, error) {
	comp, err := s.store.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}

	artworks := []models.ArtistArtwork{}
	for _, a := range comp.Artists {
		for _, w := range comp.ArtistMetadata[a.Name] {
			artworks = append(artworks, models.ArtistArtwork{Artist: a.Name, Artwork: w})
		}
	}
	return artworks, nil
}
