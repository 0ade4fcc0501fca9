package domain

import "strings"

// Status is the moderation state of a listing.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusOffline  Status = "offline"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.TrimSpace(s)) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	case StatusOffline:
		return StatusOffline, true
	default:
		return "", false
	}
}

// RoomOption is one bookable room type of a hotel. Price is a whole
// currency amount, never negative.
type RoomOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type Hotel struct {
	ID           string       `json:"id"`
	MerchantID   string       `json:"merchantId"`
	Name         string       `json:"name"`
	NameAlt      string       `json:"nameAlt"`
	Address      string       `json:"address"`
	Stars        int          `json:"stars"`
	Rooms        []RoomOption `json:"rooms"`
	OpenedOn     string       `json:"openedOn"`
	Status       Status       `json:"status"`
	RejectReason string       `json:"rejectReason,omitempty"`
	Nearby       string       `json:"nearby"`
	Images       []string     `json:"images"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
}

// Clone returns a deep copy; Rooms and Images never alias the receiver's.
func (h Hotel) Clone() Hotel {
	out := h
	if len(h.Rooms) > 0 {
		out.Rooms = make([]RoomOption, len(h.Rooms))
		copy(out.Rooms, h.Rooms)
	}
	if len(h.Images) > 0 {
		out.Images = make([]string, len(h.Images))
		copy(out.Images, h.Images)
	}
	return out
}

// MinPrice is the cheapest room option, 0 when the hotel has no rooms.
func (h Hotel) MinPrice() int64 {
	if len(h.Rooms) == 0 {
		return 0
	}
	min := h.Rooms[0].Price
	for _, r := range h.Rooms[1:] {
		if r.Price < min {
			min = r.Price
		}
	}
	return min
}

// ClampStars forces a star rating into [1,5].
func ClampStars(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}
