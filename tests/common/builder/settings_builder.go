//go:build unit || e2e

package builder

import (
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/ptr"
)

// SettingsBuilder starts from a complete configuration: internal small 250/50/25,
// internal large 400/60/30, external small 350/70/35, external large 500/80/40,
// bulk base 2000 with internal 100/0 and external 150/50.
type SettingsBuilder struct {
	Settings pricing.Settings
}

func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{Settings: pricing.Settings{
		PriceTiers: &pricing.PriceTierConfig{
			Internal: &pricing.AffiliationRates{
				Small: tier(250, 50, 25),
				Large: tier(400, 60, 30),
			},
			External: &pricing.AffiliationRates{
				Small: tier(350, 70, 35),
				Large: tier(500, 80, 40),
			},
		},
		Bulk: &pricing.BulkPriceConfig{
			Base:     ptr.Of[int64](2000),
			Internal: &pricing.BulkSurcharges{Adult: ptr.Of[int64](100), Child: ptr.Of[int64](0)},
			External: &pricing.BulkSurcharges{Adult: ptr.Of[int64](150), Child: ptr.Of[int64](50)},
		},
		Rooms: []pricing.RoomSetting{
			{ID: "r1", Name: "Birch", Beds: 2},
			{ID: "r2", Name: "Cedar", Beds: 3},
			{ID: "r3", Name: "Oak", Beds: 6},
		},
	}}
}

func tier(empty, adult, child int64) *pricing.TierRates {
	return &pricing.TierRates{Empty: ptr.Of(empty), Adult: ptr.Of(adult), Child: ptr.Of(child)}
}

func (b *SettingsBuilder) With(mutate func(*pricing.Settings)) *SettingsBuilder {
	mutate(&b.Settings)
	return b
}

func (b *SettingsBuilder) Build() pricing.Settings {
	return b.Settings
}

func (b *SettingsBuilder) WithRooms(rooms ...pricing.RoomSetting) *SettingsBuilder {
	b.Settings.Rooms = rooms
	return b
}

func (b *SettingsBuilder) WithoutBulk() *SettingsBuilder {
	b.Settings.Bulk = nil
	return b
}

// MustRoom builds a room for tests with the default large-tier threshold.
func MustRoom(id room.ID, beds int) room.Room {
	r, err := room.NewRoom(id, "", beds, room.DefaultLargeTierMinBeds)
	if err != nil {
		panic(err)
	}
	return r
}
