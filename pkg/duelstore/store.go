// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package duelstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/AccelByte/extend-pvp-duel/pkg/envelope"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
)

// Store persists finished duels and serves skill ratings. It implements
// combat.Recorder and matchmaker.RatingProvider.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordDuel inserts the finished duel with its full turn log. The row ID is
// a ULID so records sort by insertion time.
func (s *Store) RecordDuel(scope *envelope.Scope, result models.DuelResult) error {
	turnLog, err := json.Marshal(result.TurnLog)
	if err != nil {
		return fmt.Errorf("failed to marshal turn log for duel %s: %w", result.MatchID, err)
	}

	_, err = s.db.ExecContext(scope.Ctx, `
		INSERT INTO duels (id, match_id, attacker_id, defender_id, winner_id,
			attacker_hp_left, defender_hp_left, seed, turn_log, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ulid.Make().String(),
		result.MatchID,
		playerdata.IDToString(result.AttackerID),
		playerdata.IDToString(result.DefenderID),
		playerdata.IDToString(result.WinnerID),
		result.AttackerHpLeft,
		result.DefenderHpLeft,
		result.Seed,
		string(turnLog),
		result.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert duel %s: %w", result.MatchID, err)
	}
	scope.Log.Infof("duel %s recorded", result.MatchID)

	return nil
}

// GetRating returns the stored rating for playerID; ok is false when the
// player has no rating row yet.
func (s *Store) GetRating(scope *envelope.Scope, playerID playerdata.ID) (int, bool, error) {
	var mmr int
	err := s.db.QueryRowContext(scope.Ctx,
		`SELECT mmr FROM ratings WHERE player_id = ?`,
		playerdata.IDToString(playerID),
	).Scan(&mmr)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read rating for %s: %w", playerID, err)
	}

	return mmr, true, nil
}

// UpsertRating writes the rating for playerID. Rating mutation belongs to
// the season bookkeeping outside this core; this entry point exists for
// seeding and for the recorder of rating changes.
func (s *Store) UpsertRating(scope *envelope.Scope, playerID playerdata.ID, mmr int) error {
	_, err := s.db.ExecContext(scope.Ctx, `
		INSERT INTO ratings (player_id, mmr, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (player_id) DO UPDATE SET mmr = excluded.mmr, updated_at = CURRENT_TIMESTAMP`,
		playerdata.IDToString(playerID), mmr,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rating for %s: %w", playerID, err)
	}

	return nil
}
