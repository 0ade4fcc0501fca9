package app

import (
	"math"
	"time"

	"yisu_hotel/internal/domain"
)

const dateLayout = "2006-01-02"

// Fixed-date holidays (month-day, year independent) carrying a surcharge.
var holidayMMDD = map[string]struct{}{
	"01-01": {},
	"05-01": {},
	"10-01": {},
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// stayNights enumerates every calendar night in [checkIn, checkOut), checkout
// day excluded. Malformed or non-chronological ranges yield no nights.
func stayNights(checkIn, checkOut string) []time.Time {
	start, ok := parseDate(checkIn)
	if !ok {
		return nil
	}
	end, ok := parseDate(checkOut)
	if !ok || !end.After(start) {
		return nil
	}
	var nights []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

// ComputeMultiplier returns the dynamic pricing factor for a stay: the mean
// of per-night rates, where a night starts at 1.0 and gains 0.2 on Friday or
// Saturday and 0.3 on a fixed holiday (surcharges stack). Rounded to two
// decimals. Degenerate input yields 1.
func ComputeMultiplier(checkIn, checkOut string) float64 {
	nights := stayNights(checkIn, checkOut)
	if len(nights) == 0 {
		return 1
	}
	total := 0.0
	for _, n := range nights {
		rate := 1.0
		if wd := n.Weekday(); wd == time.Friday || wd == time.Saturday {
			rate += 0.2
		}
		if _, ok := holidayMMDD[n.Format("01-02")]; ok {
			rate += 0.3
		}
		total += rate
	}
	return math.Round(total/float64(len(nights))*100) / 100
}

// ApplyPricing returns a copy of h with every room price scaled by the
// multiplier and rounded to a whole amount. The stored hotel is never
// mutated. A non-finite or non-positive multiplier is treated as 1.
func ApplyPricing(h domain.Hotel, multiplier float64) domain.Hotel {
	rate := multiplier
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		rate = 1
	}
	out := h.Clone()
	for i, r := range out.Rooms {
		out.Rooms[i].Price = int64(math.Round(float64(r.Price) * rate))
	}
	return out
}
