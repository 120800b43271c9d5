// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/models"
)

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store implements competition.Store on database/sql
type Store struct {
	db     *sql.DB
	q      queryer
	driver string
	inTx   bool
}

func NewStore(db *sql.DB, driver string) *Store {
	return &Store{db: db, q: db, driver: driver}
}

// WithTx runs fn in a transaction. Nested calls reuse the outer one.
func (s *Store) WithTx(ctx context.Context, fn func(tx competition.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Store{db: s.db, q: tx, driver: s.driver, inTx: true}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockClause locks the competition row for the rest of the transaction on
// Postgres. SQLite already serializes writers.
func (s *Store) lockClause() string {
	if s.inTx && s.driver == DriverPostgres {
		return " FOR UPDATE"
	}
	return ""
}

// Competitions

func (s *Store) GetCompetition(ctx context.Context, id string) (models.Competition, error) {
	var (
		comp                                 models.Competition
		subStart, subEnd, voteStart, voteEnd int64
		minTokens, pot                       int64
		winner                               sql.NullString
		schedule                             string
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT id, description, token, submission_start, submission_end,
		       vote_start, vote_end, min_vote_tokens, finalized, winner, pot, share_schedule
		FROM competition WHERE id = $1`+s.lockClause(), id,
	).Scan(&comp.ID, &comp.Description, &comp.Token, &subStart, &subEnd,
		&voteStart, &voteEnd, &minTokens, &comp.Finalized, &winner, &pot, &schedule)
	if err == sql.ErrNoRows {
		return models.Competition{}, fmt.Errorf("%w: competition %s", competition.ErrNotFound, id)
	}
	if err != nil {
		return models.Competition{}, fmt.Errorf("failed to query competition: %w", err)
	}

	comp.SubmissionStart = uint64(subStart)
	comp.SubmissionEnd = uint64(subEnd)
	comp.VoteStart = uint64(voteStart)
	comp.VoteEnd = uint64(voteEnd)
	comp.MinVoteTokens = uint64(minTokens)
	comp.Pot = uint64(pot)
	if winner.Valid {
		w := winner.String
		comp.Winner = &w
	}
	if err := json.Unmarshal([]byte(schedule), &comp.ShareSchedule); err != nil {
		return models.Competition{}, fmt.Errorf("failed to decode share schedule: %w", err)
	}

	comp.Artists = []models.Submission{}
	comp.Votes = map[string]uint64{}
	comp.VoteLog = map[string]string{}
	comp.ArtistMetadata = map[string][]models.ArtworkMetadata{}

	if err := s.loadSubmissions(ctx, &comp); err != nil {
		return models.Competition{}, err
	}
	if err := s.loadArtworks(ctx, &comp); err != nil {
		return models.Competition{}, err
	}
	if err := s.loadVoteLog(ctx, &comp); err != nil {
		return models.Competition{}, err
	}

	return comp, nil
}

func (s *Store) loadSubmissions(ctx context.Context, comp *models.Competition) error {
	rows, err := s.q.QueryContext(ctx, `
		SELECT name, address, votes FROM submission
		WHERE competition_id = $1
		ORDER BY position
	`, comp.ID)
	if err != nil {
		return fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sub   models.Submission
			votes int64
		)
		if err := rows.Scan(&sub.Name, &sub.Address, &votes); err != nil {
			return fmt.Errorf("failed to scan submission: %w", err)
		}
		comp.Artists = append(comp.Artists, sub)
		if votes > 0 {
			comp.Votes[sub.Name] = uint64(votes)
		}
	}
	return rows.Err()
}

func (s *Store) loadArtworks(ctx context.Context, comp *models.Competition) error {
	rows, err := s.q.QueryContext(ctx, `
		SELECT artist, artwork_name, description, img_url FROM artwork
		WHERE competition_id = $1
		ORDER BY artist, position
	`, comp.ID)
	if err != nil {
		return fmt.Errorf("failed to query artworks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			artist string
			w      models.ArtworkMetadata
		)
		if err := rows.Scan(&artist, &w.ArtworkName, &w.Description, &w.ImgURL); err != nil {
			return fmt.Errorf("failed to scan artwork: %w", err)
		}
		comp.ArtistMetadata[artist] = append(comp.ArtistMetadata[artist], w)
	}
	return rows.Err()
}

func (s *Store) loadVoteLog(ctx context.Context, comp *models.Competition) error {
	rows, err := s.q.QueryContext(ctx, `
		SELECT voter, artist FROM vote_log WHERE competition_id = $1
	`, comp.ID)
	if err != nil {
		return fmt.Errorf("failed to query vote log: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var voter, artist string
		if err := rows.Scan(&voter, &artist); err != nil {
			return fmt.Errorf("failed to scan vote log: %w", err)
		}
		comp.VoteLog[voter] = artist
	}
	return rows.Err()
}

func (s *Store) CompetitionExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM competition WHERE id = $1`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query competition: %w", err)
	}
	return n > 0, nil
}

func (s *Store) ListCompetitionIDs(ctx context.Context) ([]string, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id FROM competition ORDER BY seq, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query competitions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan competition id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) InsertCompetition(ctx context.Context, comp models.Competition) error {
	schedule, err := json.Marshal(comp.ShareSchedule)
	if err != nil {
		return fmt.Errorf("failed to encode share schedule: %w", err)
	}

	var seq int64
	if err := s.q.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM competition`).Scan(&seq); err != nil {
		return fmt.Errorf("failed to allocate sequence: %w", err)
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO competition (id, seq, description, token, submission_start, submission_end,
		                         vote_start, vote_end, min_vote_tokens, finalized, pot, share_schedule)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, $10, $11)
	`, comp.ID, seq, comp.Description, comp.Token,
		int64(comp.SubmissionStart), int64(comp.SubmissionEnd),
		int64(comp.VoteStart), int64(comp.VoteEnd), int64(comp.MinVoteTokens),
		int64(comp.Pot), string(schedule))
	if err != nil {
		return wrapUnique(fmt.Errorf("failed to insert competition: %w", err), "competition "+comp.ID)
	}
	return nil
}

func (s *Store) SaveCompetition(ctx context.Context, comp models.Competition) error {
	schedule, err := json.Marshal(comp.ShareSchedule)
	if err != nil {
		return fmt.Errorf("failed to encode share schedule: %w", err)
	}

	res, err := s.q.ExecContext(ctx, `
		UPDATE competition
		SET description = $1, token = $2, min_vote_tokens = $3, pot = $4, share_schedule = $5
		WHERE id = $6
	`, comp.Description, comp.Token, int64(comp.MinVoteTokens), int64(comp.Pot), string(schedule), comp.ID)
	if err != nil {
		return fmt.Errorf("failed to update competition: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: competition %s", competition.ErrNotFound, comp.ID)
	}

	if err := s.deleteChildren(ctx, comp.ID, "submission", "artwork", "vote_log"); err != nil {
		return err
	}

	for i, a := range comp.Artists {
		_, err := s.q.ExecContext(ctx, `
			INSERT INTO submission (competition_id, name, position, address, votes)
			VALUES ($1, $2, $3, $4, $5)
		`, comp.ID, a.Name, i, a.Address, int64(comp.Votes[a.Name]))
		if err != nil {
			return wrapUnique(fmt.Errorf("failed to insert submission: %w", err), "artist "+a.Name)
		}

		for j, w := range comp.ArtistMetadata[a.Name] {
			_, err := s.q.ExecContext(ctx, `
				INSERT INTO artwork (competition_id, artist, position, artwork_name, description, img_url)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, comp.ID, a.Name, j, w.ArtworkName, w.Description, w.ImgURL)
			if err != nil {
				return fmt.Errorf("failed to insert artwork: %w", err)
			}
		}
	}

	for voter, artist := range comp.VoteLog {
		_, err := s.q.ExecContext(ctx, `
			INSERT INTO vote_log (competition_id, voter, artist) VALUES ($1, $2, $3)
		`, comp.ID, voter, artist)
		if err != nil {
			return wrapUnique(fmt.Errorf("failed to insert vote log: %w", err), "vote by "+voter)
		}
	}

	return nil
}

func (s *Store) DeleteCompetition(ctx context.Context, id string) error {
	if err := s.deleteChildren(ctx, id, "submission", "artwork", "vote_log", "vote_history", "distribution"); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, `DELETE FROM competition WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete competition: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: competition %s", competition.ErrNotFound, id)
	}
	return nil
}

func (s *Store) deleteChildren(ctx context.Context, id string, tables ...string) error {
	for _, table := range tables {
		if _, err := s.q.ExecContext(ctx, `DELETE FROM `+table+` WHERE competition_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) MarkFinalized(ctx context.Context, id string, winner *string) (bool, error) {
	var w sql.NullString
	if winner != nil {
		w = sql.NullString{String: *winner, Valid: true}
	}

	res, err := s.q.ExecContext(ctx, `
		UPDATE competition SET finalized = TRUE, winner = $1
		WHERE id = $2 AND finalized = FALSE
	`, w, id)
	if err != nil {
		return false, fmt.Errorf("failed to finalize competition: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to finalize competition: %w", err)
	}
	return n == 1, nil
}

func (s *Store) ClaimPot(ctx context.Context, id string, expected uint64) (bool, error) {
	res, err := s.q.ExecContext(ctx, `
		UPDATE competition SET pot = 0
		WHERE id = $1 AND pot = $2 AND pot > 0
	`, id, int64(expected))
	if err != nil {
		return false, fmt.Errorf("failed to claim pot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to claim pot: %w", err)
	}
	return n == 1, nil
}

// Vote history

func (s *Store) AppendVoteRecord(ctx context.Context, rec models.VoteRecord) error {
	var position int64
	err := s.q.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position), 0) + 1 FROM vote_history WHERE competition_id = $1
	`, rec.CompetitionID).Scan(&position)
	if err != nil {
		return fmt.Errorf("failed to allocate vote position: %w", err)
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO vote_history (id, competition_id, position, voter, artist, cast_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.CompetitionID, position, rec.Voter, rec.Artist, int64(rec.Timestamp))
	if err != nil {
		return wrapUnique(fmt.Errorf("failed to insert vote record: %w", err), "vote record "+rec.ID)
	}
	return nil
}

func (s *Store) ListVoteRecords(ctx context.Context, competitionID string) ([]models.VoteRecord, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, voter, artist, cast_at FROM vote_history
		WHERE competition_id = $1
		ORDER BY position
	`, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote history: %w", err)
	}
	defer rows.Close()

	records := []models.VoteRecord{}
	for rows.Next() {
		var (
			rec    models.VoteRecord
			castAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.Voter, &rec.Artist, &castAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote record: %w", err)
		}
		rec.CompetitionID = competitionID
		rec.Timestamp = uint64(castAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) DeleteVoteRecords(ctx context.Context, competitionID, artist string) error {
	_, err := s.q.ExecContext(ctx, `
		DELETE FROM vote_history WHERE competition_id = $1 AND artist = $2
	`, competitionID, artist)
	if err != nil {
		return fmt.Errorf("failed to delete vote records: %w", err)
	}
	return nil
}

// Artist registry

const profileColumns = `address, name, registered, bio, img_url, website, mediums, networks,
	competitions_participated, competitions_won`

func scanProfile(row interface{ Scan(...interface{}) error }) (models.ArtistProfile, error) {
	var (
		p                  models.ArtistProfile
		mediums, networks  string
		participated, wins int64
	)
	err := row.Scan(&p.Address, &p.Name, &p.Registered, &p.Bio, &p.ImgURL, &p.Website,
		&mediums, &networks, &participated, &wins)
	if err != nil {
		return models.ArtistProfile{}, err
	}
	if err := json.Unmarshal([]byte(mediums), &p.Mediums); err != nil {
		return models.ArtistProfile{}, fmt.Errorf("failed to decode mediums: %w", err)
	}
	if err := json.Unmarshal([]byte(networks), &p.Networks); err != nil {
		return models.ArtistProfile{}, fmt.Errorf("failed to decode networks: %w", err)
	}
	p.CompetitionsParticipated = uint32(participated)
	p.CompetitionsWon = uint32(wins)
	return p, nil
}

func (s *Store) GetProfile(ctx context.Context, address string) (models.ArtistProfile, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM artist_profile WHERE address = $1`, address)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ArtistProfile{}, fmt.Errorf("%w: artist %s", competition.ErrNotFound, address)
	}
	if err != nil {
		return models.ArtistProfile{}, fmt.Errorf("failed to query artist: %w", err)
	}
	return p, nil
}

func (s *Store) ListProfiles(ctx context.Context) ([]models.ArtistProfile, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+profileColumns+` FROM artist_profile ORDER BY address`)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	profiles := []models.ArtistProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) NameTaken(ctx context.Context, name, exceptAddress string) (bool, error) {
	var n int
	err := s.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM artist_profile WHERE name = $1 AND address <> $2
	`, name, exceptAddress).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query artist names: %w", err)
	}
	return n > 0, nil
}

func (s *Store) SaveProfile(ctx context.Context, p models.ArtistProfile) error {
	mediums, err := json.Marshal(p.Mediums)
	if err != nil {
		return fmt.Errorf("failed to encode mediums: %w", err)
	}
	networks, err := json.Marshal(p.Networks)
	if err != nil {
		return fmt.Errorf("failed to encode networks: %w", err)
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO artist_profile (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (address) DO UPDATE SET
			name = EXCLUDED.name,
			registered = EXCLUDED.registered,
			bio = EXCLUDED.bio,
			img_url = EXCLUDED.img_url,
			website = EXCLUDED.website,
			mediums = EXCLUDED.mediums,
			networks = EXCLUDED.networks,
			competitions_participated = EXCLUDED.competitions_participated,
			competitions_won = EXCLUDED.competitions_won
	`, p.Address, p.Name, p.Registered, p.Bio, p.ImgURL, p.Website,
		string(mediums), string(networks),
		int64(p.CompetitionsParticipated), int64(p.CompetitionsWon))
	if err != nil {
		return wrapUnique(fmt.Errorf("failed to save artist: %w", err), "artist name "+p.Name)
	}
	return nil
}

func (s *Store) DeleteProfile(ctx context.Context, address string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM artist_profile WHERE address = $1`, address)
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: artist %s", competition.ErrNotFound, address)
	}
	return nil
}

// Admins

// GetAdmins returns the zero pair when none has been stored yet
func (s *Store) GetAdmins(ctx context.Context) (models.Admins, error) {
	var a models.Admins
	err := s.q.QueryRowContext(ctx, `SELECT admin1, admin2 FROM admin WHERE id = 1`).Scan(&a.Admin1, &a.Admin2)
	if err == sql.ErrNoRows {
		return models.Admins{}, nil
	}
	if err != nil {
		return models.Admins{}, fmt.Errorf("failed to query admins: %w", err)
	}
	return a, nil
}

func (s *Store) SaveAdmins(ctx context.Context, a models.Admins) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO admin (id, admin1, admin2) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET admin1 = EXCLUDED.admin1, admin2 = EXCLUDED.admin2
	`, a.Admin1, a.Admin2)
	if err != nil {
		return fmt.Errorf("failed to save admins: %w", err)
	}
	return nil
}

// Distribution reports

func (s *Store) SaveDistribution(ctx context.Context, report models.DistributionReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode distribution: %w", err)
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO distribution (id, competition_id, distributed_at, payload)
		VALUES ($1, $2, $3, $4)
	`, report.ID, report.CompetitionID, int64(report.DistributedAt), string(payload))
	if err != nil {
		return wrapUnique(fmt.Errorf("failed to insert distribution: %w", err), "distribution "+report.ID)
	}
	return nil
}

func (s *Store) ListDistributions(ctx context.Context, competitionID string) ([]models.DistributionReport, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT payload FROM distribution
		WHERE competition_id = $1
		ORDER BY distributed_at, id
	`, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query distributions: %w", err)
	}
	defer rows.Close()

	reports := []models.DistributionReport{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan distribution: %w", err)
		}
		var report models.DistributionReport
		if err := json.Unmarshal([]byte(payload), &report); err != nil {
			return nil, fmt.Errorf("failed to decode distribution: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

var _ competition.Store = (*Store)(nil)
