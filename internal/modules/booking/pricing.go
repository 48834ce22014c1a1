package booking

import (
	"math"
	"time"
)

// Nights returns the number of whole nights between check-in and check-out.
// A same-day range yields zero; the date-ordering check upstream guarantees
// at least one night for any booking that reaches pricing.
func Nights(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// TotalPrice computes nights x nightly rate, rounded to the currency's
// minor unit. The result is derived state: it is recomputed on every date
// or hotel change and never taken from client input.
func TotalPrice(nightlyRate float64, checkIn, checkOut time.Time) float64 {
	total := float64(Nights(checkIn, checkOut)) * nightlyRate
	return math.Round(total*100) / 100
}
