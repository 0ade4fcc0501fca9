package app

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"yisu_hotel/internal/domain"
)

const (
	defaultPageSize      = 10
	defaultAdminPageSize = 20
	maxPageSize          = 100
)

// SearchQuery carries the raw filter inputs. Star levels and tags are
// comma-separated sets, matching the transport format.
type SearchQuery struct {
	Keyword   string
	StarLevel string
	City      string
	Tags      string
	MinPrice  *int64
	MaxPrice  *int64
	CheckIn   string
	CheckOut  string
	Page      int
	PageSize  int
	Manage    bool
}

type PricingInfo struct {
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	Multiplier float64 `json:"multiplier"`
}

type SearchPage struct {
	Items    []domain.Hotel `json:"list"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Pricing  PricingInfo    `json:"pricing"`
}

type AdminQuery struct {
	Status   string
	Keyword  string
	Page     int
	PageSize int
}

type AdminPage struct {
	Items    []domain.Hotel `json:"list"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

type SearchService struct {
	repo domain.Repository
}

func NewSearchService(r domain.Repository) *SearchService { return &SearchService{repo: r} }

// Search applies role-scoped visibility first, then the filter chain, then
// dynamic pricing, then price bounds against the date-adjusted minimum, and
// finally pagination. Total is counted before the page slice.
func (s *SearchService) Search(ctx context.Context, q SearchQuery, sess *domain.Session) (SearchPage, error) {
	all, err := s.repo.ListHotels(ctx)
	if err != nil {
		return SearchPage{}, err
	}

	list := visibleTo(all, q.Manage, sess)
	list = filterKeyword(list, q.Keyword)
	list = filterStars(list, q.StarLevel)
	list = filterCity(list, q.City)
	list = filterTags(list, q.Tags)

	// Pricing runs before the price filter so bounds apply to stay-adjusted prices.
	multiplier := ComputeMultiplier(q.CheckIn, q.CheckOut)
	priced := make([]domain.Hotel, len(list))
	for i, h := range list {
		priced[i] = ApplyPricing(h, multiplier)
	}
	priced = filterPriceRange(priced, q.MinPrice, q.MaxPrice)

	total := len(priced)
	page, size := clampPage(q.Page, q.PageSize, defaultPageSize)
	return SearchPage{
		Items:    pageSlice(priced, page, size),
		Total:    total,
		Page:     page,
		PageSize: size,
		Pricing:  PricingInfo{CheckIn: q.CheckIn, CheckOut: q.CheckOut, Multiplier: multiplier},
	}, nil
}

// Detail returns one priced hotel with rooms sorted cheapest first. A hotel
// that is not approved is only visible to its owner or an admin; anyone else
// gets NotFound, indistinguishable from an unknown id.
func (s *SearchService) Detail(ctx context.Context, id, checkIn, checkOut string, sess *domain.Session) (domain.Hotel, PricingInfo, error) {
	h, err := s.repo.FindHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, PricingInfo{}, err
	}
	if h.Status != domain.StatusApproved && !canManage(h, sess) {
		return domain.Hotel{}, PricingInfo{}, domain.ErrNotFound
	}

	multiplier := ComputeMultiplier(checkIn, checkOut)
	priced := ApplyPricing(h, multiplier)
	sort.SliceStable(priced.Rooms, func(i, j int) bool {
		return priced.Rooms[i].Price < priced.Rooms[j].Price
	})
	return priced, PricingInfo{CheckIn: checkIn, CheckOut: checkOut, Multiplier: multiplier}, nil
}

// AdminList is the moderation queue view: every listing regardless of state,
// optionally narrowed by status and keyword, unpriced.
func (s *SearchService) AdminList(ctx context.Context, q AdminQuery) (AdminPage, error) {
	all, err := s.repo.ListHotels(ctx)
	if err != nil {
		return AdminPage{}, err
	}
	list := all
	if strings.TrimSpace(q.Status) != "" {
		// an unknown status matches nothing rather than everything
		st, _ := domain.ParseStatus(q.Status)
		list = filterHotels(list, func(h domain.Hotel) bool { return h.Status == st })
	}
	list = filterKeyword(list, q.Keyword)

	total := len(list)
	page, size := clampPage(q.Page, q.PageSize, defaultAdminPageSize)
	return AdminPage{Items: pageSlice(list, page, size), Total: total, Page: page, PageSize: size}, nil
}

// ---- visibility ----

func visibleTo(all []domain.Hotel, manage bool, sess *domain.Session) []domain.Hotel {
	if !manage || sess == nil {
		return filterHotels(all, func(h domain.Hotel) bool { return h.Status == domain.StatusApproved })
	}
	switch sess.Role {
	case domain.RoleMerchant:
		return filterHotels(all, func(h domain.Hotel) bool { return h.MerchantID == sess.UserID })
	case domain.RoleAdmin:
		return all
	default:
		// unknown role: treat as public
		return filterHotels(all, func(h domain.Hotel) bool { return h.Status == domain.StatusApproved })
	}
}

func canManage(h domain.Hotel, sess *domain.Session) bool {
	if sess == nil {
		return false
	}
	switch sess.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleMerchant:
		return h.MerchantID == sess.UserID
	default:
		return false
	}
}

// ---- filter chain ----

func filterHotels(in []domain.Hotel, keep func(domain.Hotel) bool) []domain.Hotel {
	out := in[:0:0]
	for _, h := range in {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

func filterKeyword(in []domain.Hotel, keyword string) []domain.Hotel {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if k == "" {
		return in
	}
	return filterHotels(in, func(h domain.Hotel) bool {
		return strings.Contains(strings.ToLower(h.Name), k) ||
			strings.Contains(strings.ToLower(h.NameAlt), k) ||
			strings.Contains(strings.ToLower(h.Address), k)
	})
}

func filterStars(in []domain.Hotel, starLevel string) []domain.Hotel {
	if strings.TrimSpace(starLevel) == "" {
		return in
	}
	set := map[int]struct{}{}
	for _, part := range strings.Split(starLevel, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			set[n] = struct{}{}
		}
	}
	if len(set) == 0 {
		return in
	}
	return filterHotels(in, func(h domain.Hotel) bool {
		_, ok := set[h.Stars]
		return ok
	})
}

func filterCity(in []domain.Hotel, city string) []domain.Hotel {
	c := strings.ToLower(strings.TrimSpace(city))
	if c == "" {
		return in
	}
	return filterHotels(in, func(h domain.Hotel) bool {
		return strings.Contains(strings.ToLower(h.Address), c)
	})
}

func filterTags(in []domain.Hotel, tags string) []domain.Hotel {
	var wanted []string
	for _, part := range strings.Split(tags, ",") {
		if t := strings.ToLower(strings.TrimSpace(part)); t != "" {
			wanted = append(wanted, t)
		}
	}
	if len(wanted) == 0 {
		return in
	}
	return filterHotels(in, func(h domain.Hotel) bool {
		nearby := strings.ToLower(h.Nearby)
		for _, t := range wanted {
			if strings.Contains(nearby, t) {
				return true
			}
		}
		return false
	})
}

func filterPriceRange(in []domain.Hotel, min, max *int64) []domain.Hotel {
	if min == nil && max == nil {
		return in
	}
	return filterHotels(in, func(h domain.Hotel) bool {
		m := h.MinPrice()
		if min != nil && m < *min {
			return false
		}
		if max != nil && m > *max {
			return false
		}
		return true
	})
}

// ---- pagination ----

// clampPage forces the page to at least 1 and the size into [1, maxPageSize].
// A zero size means "not supplied" and takes the default; an explicit negative
// clamps to 1.
func clampPage(page, size, defSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case size == 0:
		size = defSize
	case size < 1:
		size = 1
	case size > maxPageSize:
		size = maxPageSize
	}
	return page, size
}

func pageSlice(in []domain.Hotel, page, size int) []domain.Hotel {
	start := (page - 1) * size
	if start >= len(in) {
		return []domain.Hotel{}
	}
	end := start + size
	if end > len(in) {
		end = len(in)
	}
	return in[start:end]
}
