//go:build unit

package usecase_test

import "lodge-booking/internal/domain/booking"

func toSlice(bs ...*booking.Booking) []*booking.Booking {
	return bs
}
