// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/easel/models"
)

// InitAdmins stores the configured admin pair on first start. An admin
// pair already in the store wins over configuration.
func (s *Service) InitAdmins(ctx context.Context, admin1, admin2 string) (models.Admins, error) {
	if admin1 == "" || admin2 == "" {
		return models.Admins{}, fmt.Errorf("%w: both admins are required", ErrInvalidInput)
	}

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	current, err := s.store.GetAdmins(ctx)
	if err != nil {
		return models.Admins{}, err
	}
	if current.Admin1 != "" || current.Admin2 != "" {
		if current.Admin1 != admin1 || current.Admin2 != admin2 {
			s.logger.Warn("stored admins differ from configuration, keeping stored pair")
		}
		return current, nil
	}

	admins := models.Admins{Admin1: admin1, Admin2: admin2}
	if err := s.store.SaveAdmins(ctx, admins); err != nil {
		return models.Admins{}, err
	}
	s.logger.Info("admins initialized")
	return admins, nil
}

func (s *Service) GetAdmins(ctx context.Context) (models.Admins, error) {
	return s.store.GetAdmins(ctx)
}

// UpdateAdmins replaces either admin slot. Nil fields keep their value.
func (s *Service) UpdateAdmins(ctx context.Context, from string, req models.UpdateAdminsRequest) (models.Admins, error) {
	if err := s.requireAdmin(ctx, from); err != nil {
		return models.Admins{}, err
	}

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	admins, err := s.store.GetAdmins(ctx)
	if err != nil {
		return models.Admins{}, err
	}
	if req.Admin1 != nil {
		if *req.Admin1 == "" {
			return models.Admins{}, fmt.Errorf("%w: admin1 is empty", ErrInvalidInput)
		}
		admins.Admin1 = *req.Admin1
	}
	if req.Admin2 != nil {
		if *req.Admin2 == "" {
			return models.Admins{}, fmt.Errorf("%w: admin2 is empty", ErrInvalidInput)
		}
		admins.Admin2 = *req.Admin2
	}

	if err := s.store.SaveAdmins(ctx, admins); err != nil {
		return models.Admins{}, err
	}
	s.logger.Info("admins updated", "by", from)
	return admins, nil
}

// AddArtistInfo registers the caller's artist profile. Names are unique
// across the registry.
func (s *Service) AddArtistInfo(ctx context.Context, from string, req models.ArtistInfoRequest) (models.ArtistProfile, error) {
	if err := s.auth.Require(ctx, from); err != nil {
		return models.ArtistProfile{}, err
	}
	if req.Name == "" {
		return models.ArtistProfile{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	profile := models.ArtistProfile{
		Address:    from,
		Registered: true,
		Name:       req.Name,
		Bio:        req.Bio,
		ImgURL:     req.ImgURL,
		Website:    req.Website,
		Mediums:    nonNilMediums(req.Mediums),
		Networks:   nonNilNetworks(req.Networks),
	}

	err := s.store.WithTx(ctx, func(tx Store) error {
		_, err := tx.GetProfile(ctx, from)
		if err == nil {
			return fmt.Errorf("%w: profile for %s", ErrAlreadyExists, from)
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := ensureNameFree(ctx, tx, req.Name, from); err != nil {
			return err
		}
		return tx.SaveProfile(ctx, profile)
	})
	if err != nil {
		return models.ArtistProfile{}, err
	}

	s.logger.Info("artist registered", "address", from, "name", req.Name)
	return profile, nil
}

// UpdateArtistInfo edits the caller's own profile. Nil fields keep their
// value; counters cannot be edited.
func (s *Service) UpdateArtistInfo(ctx context.Context, from string, req models.UpdateArtistInfoRequest) (models.ArtistProfile, error) {
	if err := s.auth.Require(ctx, from); err != nil {
		return models.ArtistProfile{}, err
	}

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	var profile models.ArtistProfile
	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		profile, err = tx.GetProfile(ctx, from)
		if err != nil {
			return err
		}

		if req.Name != nil && *req.Name != profile.Name {
			if *req.Name == "" {
				return fmt.Errorf("%w: name is empty", ErrInvalidInput)
			}
			if err := ensureNameFree(ctx, tx, *req.Name, from); err != nil {
				return err
			}
			profile.Name = *req.Name
		}
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.ImgURL != nil {
			profile.ImgURL = *req.ImgURL
		}
		if req.Website != nil {
			profile.Website = *req.Website
		}
		if req.Mediums != nil {
			profile.Mediums = nonNilMediums(*req.Mediums)
		}
		if req.Networks != nil {
			profile.Networks = nonNilNetworks(*req.Networks)
		}
		return tx.SaveProfile(ctx, profile)
	})
	if err != nil {
		return models.ArtistProfile{}, err
	}

	s.logger.Info("artist updated", "address", from)
	return profile, nil
}

// MigrateArtist writes a full profile, counters included, for address.
// Admins use it to carry artists over from another registry.
func (s *Service) MigrateArtist(ctx context.Context, from, address string, profile models.ArtistProfile) (models.ArtistProfile, error) {
	if err := s.requireAdmin(ctx, from); err != nil {
		return models.ArtistProfile{}, err
	}
	if address == "" || profile.Name == "" {
		return models.ArtistProfile{}, fmt.Errorf("%w: address and name are required", ErrInvalidInput)
	}

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	profile.Address = address
	profile.Mediums = nonNilMediums(profile.Mediums)
	profile.Networks = nonNilNetworks(profile.Networks)

	err := s.store.WithTx(ctx, func(tx Store) error {
		if err := ensureNameFree(ctx, tx, profile.Name, address); err != nil {
			return err
		}
		return tx.SaveProfile(ctx, profile)
	})
	if err != nil {
		return models.ArtistProfile{}, err
	}

	s.logger.Info("artist migrated", "address", address, "by", from)
	return profile, nil
}

// RemoveRegisteredArtist deletes a profile from the registry
func (s *Service) RemoveRegisteredArtist(ctx context.Context, from, address string) error {
	if err := s.requireAdmin(ctx, from); err != nil {
		return err
	}

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	if err := s.store.DeleteProfile(ctx, address); err != nil {
		return err
	}
	s.logger.Info("artist unregistered", "address", address, "by", from)
	return nil
}

func (s *Service) GetArtists(ctx context.Context) ([]models.ArtistProfile, error) {
	return s.store.ListProfiles(ctx)
}

func (s *Service) GetArtistInfo(ctx context.Context, address string) (models.ArtistProfile, error) {
	return s.store.GetProfile(ctx, address)
}

func (s *Service) HasRegistered(ctx context.Context, address string) (bool, error) {
	_, err := s.store.GetProfile(ctx, address)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func ensureNameFree(ctx context.Context, tx Store, name, address string) error {
	taken, err := tx.NameTaken(ctx, name, address)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: artist name %s", ErrAlreadyExists, name)
	}
	return nil
}

func nonNilMediums(m []models.Medium) []models.Medium {
	if m == nil {
		return []models.Medium{}
	}
	return m
}

func nonNilNetworks(n []models.Network) []models.Network {
	if n == nil {
		return []models.Network{}
	}
	return n
}
