package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"yisu_hotel/internal/app"
	"yisu_hotel/internal/domain"
)

func TestCreate_RequiredFields(t *testing.T) {
	svc := app.NewListingService(newStore(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, app.CreateHotelInput{}, "u1")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	for _, f := range []string{"name", "address", "openedOn"} {
		if !strings.Contains(err.Error(), f) {
			t.Fatalf("error %q does not name field %s", err, f)
		}
	}

	// all scalars present but no rooms
	_, err = svc.Create(ctx, app.CreateHotelInput{
		Name: "Inn", Address: "somewhere", OpenedOn: "2020-01-01",
	}, "u1")
	if !errors.As(err, &ve) || !strings.Contains(err.Error(), "rooms") {
		t.Fatalf("missing rooms: err = %v", err)
	}
}

func TestCreate_NewListing(t *testing.T) {
	store := newStore(t)
	svc := app.NewListingService(store)
	ctx := context.Background()

	h, err := svc.Create(ctx, app.CreateHotelInput{
		Name:     "  Harbor View  ",
		Address:  "9 Pier Road",
		OpenedOn: "2022-05-01",
		Stars:    9,
		Rooms: []app.RoomInput{
			{ID: "client-chosen", Name: "Queen", Price: 100},
			{Price: -50},
		},
	}, "u7")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if h.ID != "h1" {
		t.Fatalf("id = %s, want h1", h.ID)
	}
	if h.Status != domain.StatusPending || h.RejectReason != "" {
		t.Fatalf("new listing status=%s reason=%q", h.Status, h.RejectReason)
	}
	if h.MerchantID != "u7" {
		t.Fatalf("owner = %s", h.MerchantID)
	}
	if h.Name != "Harbor View" || h.NameAlt != "Harbor View" {
		t.Fatalf("names: %q / %q", h.Name, h.NameAlt)
	}
	if h.Stars != 5 {
		t.Fatalf("stars = %d, want clamped 5", h.Stars)
	}
	// room ids are always assigned on create, even when the client sends one
	if h.Rooms[0].ID != "r_h1_1" || h.Rooms[1].ID != "r_h1_2" {
		t.Fatalf("room ids: %s, %s", h.Rooms[0].ID, h.Rooms[1].ID)
	}
	if h.Rooms[1].Price != 0 {
		t.Fatalf("negative price floored: got %d", h.Rooms[1].Price)
	}
	if h.Rooms[1].Name != "Room" {
		t.Fatalf("default room name: got %q", h.Rooms[1].Name)
	}
	if h.CreatedAt == "" || h.UpdatedAt == "" {
		t.Fatalf("timestamps not set: %+v", h)
	}

	// stored and retrievable
	stored, err := store.FindHotel(ctx, "h1")
	if err != nil {
		t.Fatalf("find after create: %v", err)
	}
	if stored.Name != "Harbor View" {
		t.Fatalf("stored name = %q", stored.Name)
	}

	// id sequence continues
	h2, err := svc.Create(ctx, app.CreateHotelInput{
		Name: "Second", Address: "x", OpenedOn: "2021-01-01",
		Rooms: []app.RoomInput{{Price: 10}},
	}, "u7")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if h2.ID != "h2" {
		t.Fatalf("second id = %s, want h2", h2.ID)
	}
}

func TestEdit_OwnershipAndMerge(t *testing.T) {
	base := listing("h1", "u1", domain.StatusApproved, 100, 200)
	base.Stars = 4
	base.Nearby = "lake"
	store := newStore(t, base)
	svc := app.NewListingService(store)
	ctx := context.Background()

	// non-owner is rejected even with a valid payload
	name := "New Name"
	if _, err := svc.Edit(ctx, "h1", app.EditHotelInput{Name: &name}, "u9"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner edit: err = %v, want Forbidden", err)
	}
	if _, err := svc.Edit(ctx, "nope", app.EditHotelInput{}, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown id: err = %v, want NotFound", err)
	}

	// partial update: only supplied fields change
	got, err := svc.Edit(ctx, "h1", app.EditHotelInput{Name: &name}, "u1")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.Name != "New Name" {
		t.Fatalf("name = %q", got.Name)
	}
	if got.Stars != 4 || got.Nearby != "lake" || got.Status != domain.StatusApproved {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if got.UpdatedAt == base.UpdatedAt {
		t.Fatalf("updatedAt not refreshed")
	}
}

func TestEdit_StarsFallback(t *testing.T) {
	base := listing("h1", "u1", domain.StatusApproved, 100)
	base.Stars = 4
	svc := app.NewListingService(newStore(t, base))
	ctx := context.Background()

	zero := 0
	got, err := svc.Edit(ctx, "h1", app.EditHotelInput{Stars: &zero}, "u1")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.Stars != 4 {
		t.Fatalf("zero stars should keep prior, got %d", got.Stars)
	}

	big := 11
	got, err = svc.Edit(ctx, "h1", app.EditHotelInput{Stars: &big}, "u1")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.Stars != 5 {
		t.Fatalf("stars = %d, want clamped 5", got.Stars)
	}
}

func TestEdit_RoomIDsAndSorting(t *testing.T) {
	svc := app.NewListingService(newStore(t, listing("h1", "u1", domain.StatusApproved, 100)))
	ctx := context.Background()

	rooms := []app.RoomInput{
		{ID: "keep-me", Name: "Suite", Price: 500},
		{Name: "Budget", Price: 80},
	}
	got, err := svc.Edit(ctx, "h1", app.EditHotelInput{Rooms: &rooms}, "u1")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	// response is sorted cheapest first
	if got.Rooms[0].Name != "Budget" || got.Rooms[1].Name != "Suite" {
		t.Fatalf("rooms not sorted by price: %+v", got.Rooms)
	}
	// supplied id kept, blank id synthesized from position
	if got.Rooms[1].ID != "keep-me" {
		t.Fatalf("supplied id dropped: %+v", got.Rooms[1])
	}
	if got.Rooms[0].ID != "r_h1_2" {
		t.Fatalf("synthesized id = %s, want r_h1_2", got.Rooms[0].ID)
	}
}
