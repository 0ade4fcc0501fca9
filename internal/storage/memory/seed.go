package memory

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"yisu_hotel/internal/domain"
)

// Seed builds the default demo dataset used when no snapshot exists yet or
// the stored one is unreadable: one merchant, one admin, two published
// hotels and one still in review.
func Seed() domain.Snapshot {
	return domain.Snapshot{
		Users: []domain.User{
			{ID: "u1", Username: "merchant1", PasswordHash: hash("123456"), Role: domain.RoleMerchant},
			{ID: "u2", Username: "admin1", PasswordHash: hash("123456"), Role: domain.RoleAdmin},
		},
		Hotels: []domain.Hotel{
			{
				ID:         "h1",
				MerchantID: "u1",
				Name:       "Yisu Select West Lake",
				NameAlt:    "Yisu Select West Lake",
				Address:    "100 Wensan Road, Xihu District, Hangzhou",
				Stars:      4,
				Rooms: []domain.RoomOption{
					{ID: "r1", Name: "Queen Room", Price: 388},
					{ID: "r2", Name: "Twin Room", Price: 428},
					{ID: "r3", Name: "Family Suite", Price: 688},
				},
				OpenedOn:  "2020-06-01",
				Status:    domain.StatusApproved,
				Nearby:    "West Lake, Huanglong Sports Center, Wensan Road tech district",
				Images:    []string{"https://via.placeholder.com/800x400?text=Hotel1"},
				CreatedAt: "2024-01-15T10:00:00Z",
				UpdatedAt: "2024-01-15T10:00:00Z",
			},
			{
				ID:         "h2",
				MerchantID: "u1",
				Name:       "Yisu Lingyin Resort",
				NameAlt:    "Yisu Lingyin Resort",
				Address:    "18 Lingyin Road, Xihu District, Hangzhou",
				Stars:      5,
				Rooms: []domain.RoomOption{
					{ID: "r4", Name: "Mountain View Queen", Price: 888},
					{ID: "r5", Name: "Courtyard Suite", Price: 1288},
				},
				OpenedOn:  "2021-03-20",
				Status:    domain.StatusApproved,
				Nearby:    "Lingyin Temple, North Peak cableway, Meijiawu tea village",
				Images:    []string{"https://via.placeholder.com/800x400?text=Hotel2"},
				CreatedAt: "2024-02-01T10:00:00Z",
				UpdatedAt: "2024-02-01T10:00:00Z",
			},
			{
				ID:         "h3",
				MerchantID: "u1",
				Name:       "Yisu Qianjiang Business",
				NameAlt:    "Yisu Qianjiang Business",
				Address:    "200 Qianjiang Road, Jianggan District, Hangzhou",
				Stars:      3,
				Rooms: []domain.RoomOption{
					{ID: "r6", Name: "Standard Single", Price: 268},
					{ID: "r7", Name: "Standard Twin", Price: 298},
				},
				OpenedOn:  "2019-10-01",
				Status:    domain.StatusPending,
				Nearby:    "",
				Images:    []string{},
				CreatedAt: "2024-03-10T10:00:00Z",
				UpdatedAt: "2024-03-10T10:00:00Z",
			},
		},
	}
}

func hash(password string) string {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on absurd cost values; seed cost is the default
		log.Fatal().Err(err).Msg("seed password hash failed")
	}
	return string(b)
}
