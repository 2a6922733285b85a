package usecase

import (
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/infra"
	"lodge-booking/internal/pkg/errs"
)

var (
	ErrRoomNotFound     = errs.New("room not found")
	ErrBookingNotFound  = errs.New("booking not found")
	ErrRepositoryFailed = errs.New("repository operation failed")
	ErrInvalidRequest   = errs.New("invalid request")
)

// BookingLookupErr classifies an error from BookingReader.FindBooking.
func BookingLookupErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrBookingNotFound)
	}
	return errs.Mark(errs.Wrap(err, "find booking"), ErrRepositoryFailed)
}

// SettingsLookupErr turns absent settings into a configuration error; pricing never
// proceeds without them.
func SettingsLookupErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return &pricing.ConfigurationError{Path: "settings", Reason: "no settings stored"}
	}
	return errs.Mark(errs.Wrap(err, "get settings"), ErrRepositoryFailed)
}
