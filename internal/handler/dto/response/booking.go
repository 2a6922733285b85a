package response

import (
	"time"

	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/pkg/jwt"
	"lodge-booking/internal/usecase/commands"
	"lodge-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LineResponse struct {
	Category    string `json:"category"`
	Room        string `json:"room,omitempty"`
	Tier        string `json:"tier,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	Quantity    int    `json:"quantity"`
	Rate        int64  `json:"rate"`
	Nights      int    `json:"nights"`
	Amount      int64  `json:"amount"`
}

type QuoteResponse struct {
	Mode       string         `json:"mode"`
	Nights     int            `json:"nights"`
	Lines      []LineResponse `json:"lines"`
	Total      int64          `json:"total"`
	Computed   int64          `json:"computed"`
	Reconciled bool           `json:"reconciled"`
}

func FromQuote(q pricing.Quote) (*QuoteResponse, error) {
	var out QuoteResponse
	if err := copier.Copy(&out, &q); err != nil {
		return nil, errs.Wrap(err, "map quote")
	}
	if out.Lines == nil {
		out.Lines = []LineResponse{}
	}
	out.Reconciled = q.IsReconciled()
	return &out, nil
}

type PriceBreakdownResponse struct {
	BookingID   uuid.UUID     `json:"booking_id"`
	StoredTotal int64         `json:"stored_total"`
	Quote       QuoteResponse `json:"quote"`
}

func FromPriceBreakdownView(v *queries.PriceBreakdownView) (*PriceBreakdownResponse, error) {
	q, err := FromQuote(v.Quote)
	if err != nil {
		return nil, err
	}
	return &PriceBreakdownResponse{BookingID: v.BookingID, StoredTotal: v.Stored, Quote: *q}, nil
}

// DraftResponse is the proposed booking handed to the booking-creation API.
type DraftResponse struct {
	ID           uuid.UUID                      `json:"id"`
	Status       string                         `json:"status"`
	Rooms        []room.ID                      `json:"rooms"`
	CheckIn      calendar.Date                  `json:"check_in"`
	CheckOut     calendar.Date                  `json:"check_out"`
	RoomDates    map[room.ID]calendar.DateRange `json:"room_dates,omitempty"`
	Bulk         bool                           `json:"bulk"`
	TotalPrice   int64                          `json:"total_price"`
	SessionToken uuid.UUID                      `json:"session_token"`
	ExpiresAt    *time.Time                     `json:"expires_at,omitempty"`
	Quote        QuoteResponse                  `json:"quote"`
	// HoldToken is a signed receipt of the hold for the booking-creation API.
	HoldToken string `json:"hold_token"`
}

func FromDraft(d *commands.Draft) (*DraftResponse, error) {
	q, err := FromQuote(d.Quote)
	if err != nil {
		return nil, err
	}
	b := d.Booking
	out := &DraftResponse{
		ID:           b.ID(),
		Status:       b.Status().String(),
		Rooms:        b.Rooms(),
		CheckIn:      b.Dates().Start,
		CheckOut:     b.Dates().End,
		Bulk:         b.IsBulk(),
		TotalPrice:   b.TotalPrice(),
		SessionToken: b.SessionToken(),
		ExpiresAt:    b.ExpiresAt(),
		Quote:        *q,
	}
	for _, id := range out.Rooms {
		if o, ok := b.Override(id); ok && o.Dates != nil {
			if out.RoomDates == nil {
				out.RoomDates = make(map[room.ID]calendar.DateRange)
			}
			out.RoomDates[id] = *o.Dates
		}
	}
	return out, nil
}

type HoldReceiptResponse struct {
	BookingID    uuid.UUID `json:"booking_id"`
	SessionToken uuid.UUID `json:"session_token"`
	Rooms        []room.ID `json:"rooms"`
	CheckIn      string    `json:"check_in"`
	CheckOut     string    `json:"check_out"`
	Total        int64     `json:"total"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func FromHoldClaims(c *jwt.Claims) *HoldReceiptResponse {
	id, _ := c.BookingID()
	out := &HoldReceiptResponse{
		BookingID:    id,
		SessionToken: c.SessionToken,
		Rooms:        c.Rooms,
		CheckIn:      c.CheckIn,
		CheckOut:     c.CheckOut,
		Total:        c.Total,
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
