package readstore

import (
	"context"
	"encoding/json"

	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/infra"
	"lodge-booking/internal/infra/db"
	"lodge-booking/internal/pkg/pgconv"
)

const getSettingsSQL = `SELECT document FROM settings WHERE id = 1`

// SettingsReadStore reads the property configuration document. Rooms are part of it.
type SettingsReadStore struct {
	db db.DBTX
}

func NewSettingsReadStore(db db.DBTX) *SettingsReadStore {
	return &SettingsReadStore{db: db}
}

func (r *SettingsReadStore) GetSettings(ctx context.Context) (pricing.Settings, error) {
	var raw []byte
	if err := r.db.QueryRow(ctx, getSettingsSQL).Scan(&raw); err != nil {
		if pgconv.IsNoRows(err) {
			return pricing.Settings{}, infra.WrapRepoErr("settings not found", err, infra.KindNotFound)
		}
		return pricing.Settings{}, infra.WrapRepoErr("failed to get settings", err)
	}

	var s pricing.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return pricing.Settings{}, infra.WrapRepoErr("failed to decode settings", err, infra.KindCorruptRow)
	}
	return s, nil
}

func (r *SettingsReadStore) ListRooms(ctx context.Context) ([]room.Room, error) {
	s, err := r.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := s.RoomList()
	if err != nil {
		return nil, infra.WrapRepoErr("invalid room list in settings", err, infra.KindCorruptRow)
	}
	return rooms, nil
}
