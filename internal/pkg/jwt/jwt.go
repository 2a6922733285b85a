// Package jwt signs hold receipts: a prepared draft is handed to the booking-creation API
// together with a token proving which session holds which nights until when.
package jwt

import (
	"errors"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/clock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid hold token")
	ErrExpiredToken = errors.New("hold token expired")
	ErrNotAHold     = errors.New("only proposed holds with an expiry can be signed")
)

const issuer = "lodge-booking"

type Claims struct {
	SessionToken uuid.UUID `json:"sid"`
	Rooms        []room.ID `json:"rooms"`
	CheckIn      string    `json:"check_in"`
	CheckOut     string    `json:"check_out"`
	Total        int64     `json:"total"`
	jwt.RegisteredClaims
}

// BookingID is the hold the token was issued for.
func (c *Claims) BookingID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type Service struct {
	secretKey []byte
	clock     clock.Clock
}

func NewService(secretKey string, c clock.Clock) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		clock:     c,
	}
}

// IssueHoldToken signs hold. The token expires with the hold.
func (s *Service) IssueHoldToken(hold *booking.Booking) (string, error) {
	if hold.Status() != booking.StatusProposed || hold.ExpiresAt() == nil {
		return "", ErrNotAHold
	}
	dates := hold.Dates()
	claims := Claims{
		SessionToken: hold.SessionToken(),
		Rooms:        hold.Rooms(),
		CheckIn:      dates.Start.String(),
		CheckOut:     dates.End.String(),
		Total:        hold.TotalPrice(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   hold.ID().String(),
			IssuedAt:  jwt.NewNumericDate(s.clock.Now()),
			ExpiresAt: jwt.NewNumericDate(*hold.ExpiresAt()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) VerifyHoldToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.BookingID(); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
