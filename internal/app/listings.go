package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"yisu_hotel/internal/domain"
)

const defaultRoomName = "Room"

type RoomInput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type CreateHotelInput struct {
	Name     string      `json:"name"`
	NameAlt  string      `json:"nameAlt"`
	Address  string      `json:"address"`
	Stars    int         `json:"stars"`
	Rooms    []RoomInput `json:"rooms"`
	OpenedOn string      `json:"openedOn"`
	Nearby   string      `json:"nearby"`
	Images   []string    `json:"images"`
}

// EditHotelInput has partial-update semantics: nil fields keep their prior
// value. Stars of 0 also falls back, mirroring the create-side default rule.
type EditHotelInput struct {
	Name     *string      `json:"name"`
	NameAlt  *string      `json:"nameAlt"`
	Address  *string      `json:"address"`
	Stars    *int         `json:"stars"`
	Rooms    *[]RoomInput `json:"rooms"`
	OpenedOn *string      `json:"openedOn"`
	Nearby   *string      `json:"nearby"`
	Images   *[]string    `json:"images"`
}

type ListingService struct {
	repo domain.Repository
}

func NewListingService(r domain.Repository) *ListingService { return &ListingService{repo: r} }

// Create registers a new listing for merchantID. New hotels always start
// pending; moderation alone moves them onward.
func (s *ListingService) Create(ctx context.Context, in CreateHotelInput, merchantID string) (domain.Hotel, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(in.OpenedOn) == "" {
		missing = append(missing, "openedOn")
	}
	if len(missing) > 0 {
		return domain.Hotel{}, domain.Validationf(missing...)
	}
	if len(in.Rooms) == 0 {
		return domain.Hotel{}, domain.Validationf("rooms")
	}

	id, err := s.repo.NextHotelID(ctx)
	if err != nil {
		return domain.Hotel{}, err
	}

	stars := in.Stars
	if stars == 0 {
		stars = 3
	}
	name := strings.TrimSpace(in.Name)
	nameAlt := strings.TrimSpace(in.NameAlt)
	if nameAlt == "" {
		nameAlt = name
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	h := domain.Hotel{
		ID:         id,
		MerchantID: merchantID,
		Name:       name,
		NameAlt:    nameAlt,
		Address:    strings.TrimSpace(in.Address),
		Stars:      domain.ClampStars(stars),
		Rooms:      normalizeRooms(id, in.Rooms, false),
		OpenedOn:   strings.TrimSpace(in.OpenedOn),
		Status:     domain.StatusPending,
		Nearby:     strings.TrimSpace(in.Nearby),
		Images:     images,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.UpsertHotel(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	if err := s.repo.Persist(ctx); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

// Edit merges the supplied fields into the caller's own listing. Status is
// never touched here; only moderation changes it.
func (s *ListingService) Edit(ctx context.Context, id string, in EditHotelInput, callerID string) (domain.Hotel, error) {
	h, err := s.repo.FindHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if h.MerchantID != callerID {
		return domain.Hotel{}, domain.ErrForbidden
	}

	if in.Name != nil {
		h.Name = strings.TrimSpace(*in.Name)
	}
	if in.NameAlt != nil {
		h.NameAlt = strings.TrimSpace(*in.NameAlt)
	}
	if in.Address != nil {
		h.Address = strings.TrimSpace(*in.Address)
	}
	if in.Stars != nil && *in.Stars != 0 {
		h.Stars = domain.ClampStars(*in.Stars)
	}
	if in.OpenedOn != nil {
		h.OpenedOn = strings.TrimSpace(*in.OpenedOn)
	}
	if in.Nearby != nil {
		h.Nearby = strings.TrimSpace(*in.Nearby)
	}
	if in.Rooms != nil {
		h.Rooms = normalizeRooms(id, *in.Rooms, true)
	}
	if in.Images != nil {
		h.Images = *in.Images
	}
	h.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.repo.UpsertHotel(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	if err := s.repo.Persist(ctx); err != nil {
		return domain.Hotel{}, err
	}

	out := h.Clone()
	sort.SliceStable(out.Rooms, func(i, j int) bool { return out.Rooms[i].Price < out.Rooms[j].Price })
	return out, nil
}

// normalizeRooms synthesizes room ids from the hotel id and position. With
// keepIDs set (edits), a non-blank client-supplied id survives; on create
// every id is assigned fresh. Prices are floored at zero.
func normalizeRooms(hotelID string, in []RoomInput, keepIDs bool) []domain.RoomOption {
	out := make([]domain.RoomOption, 0, len(in))
	for i, r := range in {
		id := ""
		if keepIDs {
			id = strings.TrimSpace(r.ID)
		}
		if id == "" {
			id = fmt.Sprintf("r_%s_%d", hotelID, i+1)
		}
		name := strings.TrimSpace(r.Name)
		if name == "" {
			name = defaultRoomName
		}
		price := r.Price
		if price < 0 {
			price = 0
		}
		out = append(out, domain.RoomOption{ID: id, Name: name, Price: price})
	}
	return out
}
