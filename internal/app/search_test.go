package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"yisu_hotel/internal/app"
	"yisu_hotel/internal/domain"
	"yisu_hotel/internal/storage/memory"
)

// ---- helpers ----

func newStore(t *testing.T, hotels ...domain.Hotel) *memory.Store {
	t.Helper()
	s := memory.New(nil)
	for _, h := range hotels {
		if err := s.UpsertHotel(context.Background(), h); err != nil {
			t.Fatalf("seed hotel %s: %v", h.ID, err)
		}
	}
	return s
}

func listing(id, merchant string, status domain.Status, prices ...int64) domain.Hotel {
	rooms := make([]domain.RoomOption, len(prices))
	for i, p := range prices {
		rooms[i] = domain.RoomOption{ID: fmt.Sprintf("r_%s_%d", id, i+1), Name: "Room", Price: p}
	}
	return domain.Hotel{
		ID:         id,
		MerchantID: merchant,
		Name:       "Hotel " + id,
		NameAlt:    "Hotel " + id,
		Address:    "1 Test Road, Hangzhou",
		Stars:      3,
		Rooms:      rooms,
		OpenedOn:   "2020-01-01",
		Status:     status,
	}
}

func merchantSession(userID string) *domain.Session {
	return &domain.Session{Token: "tk_test", UserID: userID, Role: domain.RoleMerchant}
}

func adminSession() *domain.Session {
	return &domain.Session{Token: "tk_admin", UserID: "u2", Role: domain.RoleAdmin}
}

// ---- visibility ----

func TestSearch_AnonymousSeesOnlyApproved(t *testing.T) {
	svc := app.NewSearchService(newStore(t,
		listing("h1", "u1", domain.StatusApproved, 100),
		listing("h2", "u1", domain.StatusPending, 100),
		listing("h3", "u1", domain.StatusRejected, 100),
		listing("h4", "u1", domain.StatusOffline, 100),
	))

	page, err := svc.Search(context.Background(), app.SearchQuery{}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].ID != "h1" {
		t.Fatalf("expected only h1, got %+v", page.Items)
	}
	for _, h := range page.Items {
		if h.Status != domain.StatusApproved {
			t.Fatalf("anonymous search leaked status %s", h.Status)
		}
	}
}

func TestSearch_ManageScopes(t *testing.T) {
	store := newStore(t,
		listing("h1", "u1", domain.StatusPending, 100),
		listing("h2", "u9", domain.StatusApproved, 100),
		listing("h3", "u1", domain.StatusOffline, 100),
	)
	svc := app.NewSearchService(store)
	ctx := context.Background()

	// merchant manage view: own hotels only, any status
	page, err := svc.Search(ctx, app.SearchQuery{Manage: true}, merchantSession("u1"))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("merchant manage total = %d, want 2", page.Total)
	}
	for _, h := range page.Items {
		if h.MerchantID != "u1" {
			t.Fatalf("merchant manage leaked hotel owned by %s", h.MerchantID)
		}
	}

	// admin manage view: everything
	page, err = svc.Search(ctx, app.SearchQuery{Manage: true}, adminSession())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("admin manage total = %d, want 3", page.Total)
	}

	// manage flag without a session degrades to the public view
	page, err = svc.Search(ctx, app.SearchQuery{Manage: true}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != "h2" {
		t.Fatalf("anonymous manage: got %+v", page.Items)
	}
}

// ---- filter chain ----

func TestSearch_Filters(t *testing.T) {
	a := listing("h1", "u1", domain.StatusApproved, 300)
	a.Name = "Lakeside Grand"
	a.Address = "100 Wensan Road, Xihu District, Hangzhou"
	a.Stars = 5
	a.Nearby = "West Lake, tech district"

	b := listing("h2", "u1", domain.StatusApproved, 200)
	b.Name = "Riverside Inn"
	b.NameAlt = "Qianjiang Riverside"
	b.Address = "200 Qianjiang Road, Shanghai"
	b.Stars = 3
	b.Nearby = "riverside park"

	svc := app.NewSearchService(newStore(t, a, b))
	ctx := context.Background()

	cases := []struct {
		name string
		q    app.SearchQuery
		want []string
	}{
		{"keyword matches name", app.SearchQuery{Keyword: "lakeside"}, []string{"h1"}},
		{"keyword matches alt name", app.SearchQuery{Keyword: "qianjiang river"}, []string{"h2"}},
		{"keyword matches address", app.SearchQuery{Keyword: "wensan"}, []string{"h1"}},
		{"star set", app.SearchQuery{StarLevel: "3,4"}, []string{"h2"}},
		{"star set garbage entries ignored", app.SearchQuery{StarLevel: "x,5"}, []string{"h1"}},
		{"city substring", app.SearchQuery{City: "hangzhou"}, []string{"h1"}},
		{"tags any-match", app.SearchQuery{Tags: "tech,metro"}, []string{"h1"}},
		{"no filters", app.SearchQuery{}, []string{"h1", "h2"}},
	}
	for _, tc := range cases {
		page, err := svc.Search(ctx, tc.q, nil)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(page.Items) != len(tc.want) {
			t.Fatalf("%s: got %d items, want %d", tc.name, len(page.Items), len(tc.want))
		}
		for i, id := range tc.want {
			if page.Items[i].ID != id {
				t.Fatalf("%s: item %d = %s, want %s", tc.name, i, page.Items[i].ID, id)
			}
		}
	}
}

func TestSearch_PriceBoundsUseDateAdjustedPrices(t *testing.T) {
	svc := app.NewSearchService(newStore(t, listing("h1", "u1", domain.StatusApproved, 100, 250)))
	ctx := context.Background()
	max := int64(110)

	// No dates: min price 100 passes the cap.
	page, err := svc.Search(ctx, app.SearchQuery{MaxPrice: &max}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("undated: total = %d, want 1", page.Total)
	}
	if page.Pricing.Multiplier != 1 {
		t.Fatalf("undated multiplier = %v, want 1", page.Pricing.Multiplier)
	}

	// Fri+Sat stay: minimum becomes 120 and the same cap now excludes it.
	page, err = svc.Search(ctx, app.SearchQuery{
		MaxPrice: &max, CheckIn: "2024-01-05", CheckOut: "2024-01-07",
	}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("weekend: total = %d, want 0", page.Total)
	}
	if page.Pricing.Multiplier != 1.2 {
		t.Fatalf("weekend multiplier = %v, want 1.2", page.Pricing.Multiplier)
	}
}

func TestSearch_Pagination(t *testing.T) {
	hotels := make([]domain.Hotel, 25)
	for i := range hotels {
		hotels[i] = listing(fmt.Sprintf("h%d", i+1), "u1", domain.StatusApproved, 100)
	}
	svc := app.NewSearchService(newStore(t, hotels...))
	ctx := context.Background()

	page, err := svc.Search(ctx, app.SearchQuery{Page: 1, PageSize: 10}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Items) != 10 || page.Total != 25 {
		t.Fatalf("page 1: items=%d total=%d", len(page.Items), page.Total)
	}

	page, err = svc.Search(ctx, app.SearchQuery{Page: 3, PageSize: 10}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Items) != 5 || page.Total != 25 {
		t.Fatalf("page 3: items=%d total=%d", len(page.Items), page.Total)
	}

	// defaults and clamps
	page, _ = svc.Search(ctx, app.SearchQuery{Page: -2, PageSize: 1000}, nil)
	if page.Page != 1 || page.PageSize != 100 {
		t.Fatalf("clamped page=%d size=%d", page.Page, page.PageSize)
	}
	page, _ = svc.Search(ctx, app.SearchQuery{}, nil)
	if page.Page != 1 || page.PageSize != 10 {
		t.Fatalf("defaults page=%d size=%d", page.Page, page.PageSize)
	}
	// an explicit negative size clamps to 1, it does not take the default
	page, _ = svc.Search(ctx, app.SearchQuery{PageSize: -5}, nil)
	if page.PageSize != 1 || len(page.Items) != 1 {
		t.Fatalf("negative size: size=%d items=%d", page.PageSize, len(page.Items))
	}
}

// ---- detail ----

func TestDetail_VisibilityAndSorting(t *testing.T) {
	h := listing("h1", "u1", domain.StatusPending, 300, 100, 200)
	svc := app.NewSearchService(newStore(t, h))
	ctx := context.Background()

	if _, _, err := svc.Detail(ctx, "h1", "", "", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("anonymous detail of pending hotel: err = %v, want NotFound", err)
	}
	if _, _, err := svc.Detail(ctx, "h1", "", "", merchantSession("u9")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("other merchant detail: err = %v, want NotFound", err)
	}
	if _, _, err := svc.Detail(ctx, "missing", "", "", adminSession()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown id: err = %v, want NotFound", err)
	}

	got, pricing, err := svc.Detail(ctx, "h1", "", "", merchantSession("u1"))
	if err != nil {
		t.Fatalf("owner detail: %v", err)
	}
	if pricing.Multiplier != 1 {
		t.Fatalf("undated multiplier = %v", pricing.Multiplier)
	}
	prices := []int64{got.Rooms[0].Price, got.Rooms[1].Price, got.Rooms[2].Price}
	if prices[0] != 100 || prices[1] != 200 || prices[2] != 300 {
		t.Fatalf("rooms not sorted ascending: %v", prices)
	}

	if _, _, err := svc.Detail(ctx, "h1", "", "", adminSession()); err != nil {
		t.Fatalf("admin detail: %v", err)
	}
}

// ---- admin list ----

func TestAdminList_StatusAndKeyword(t *testing.T) {
	a := listing("h1", "u1", domain.StatusPending, 100)
	a.Name = "Sunrise Court"
	b := listing("h2", "u1", domain.StatusRejected, 100)
	c := listing("h3", "u1", domain.StatusPending, 100)
	svc := app.NewSearchService(newStore(t, a, b, c))
	ctx := context.Background()

	page, err := svc.AdminList(ctx, app.AdminQuery{Status: "pending"})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("pending total = %d, want 2", page.Total)
	}
	if page.PageSize != 20 {
		t.Fatalf("admin default page size = %d, want 20", page.PageSize)
	}

	page, _ = svc.AdminList(ctx, app.AdminQuery{Status: "pending", Keyword: "sunrise"})
	if page.Total != 1 || page.Items[0].ID != "h1" {
		t.Fatalf("keyword narrow: %+v", page.Items)
	}

	// unknown status strings match nothing; only a blank status means "all"
	page, _ = svc.AdminList(ctx, app.AdminQuery{Status: "bogus"})
	if page.Total != 0 {
		t.Fatalf("bogus status total = %d, want 0", page.Total)
	}
	page, _ = svc.AdminList(ctx, app.AdminQuery{})
	if page.Total != 3 {
		t.Fatalf("blank status total = %d, want 3", page.Total)
	}
}
