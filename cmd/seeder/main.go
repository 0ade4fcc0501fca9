// Command seeder fills the configured snapshot backend with generated demo
// listings on top of the default dataset, fanning the writes out with a
// bounded number of workers.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"yisu_hotel/internal/adapters/observability"
	redisad "yisu_hotel/internal/adapters/redis"
	"yisu_hotel/internal/domain"
	"yisu_hotel/internal/shared"
	"yisu_hotel/internal/storage/memory"
	mysqlstore "yisu_hotel/internal/storage/mysql"
	"yisu_hotel/internal/storage/snapshot"
)

const seedWorkers = 8

var districts = []string{"Xihu", "Jianggan", "Gongshu", "Binjiang", "Xiaoshan", "Yuhang"}

var statuses = []domain.Status{
	domain.StatusApproved, domain.StatusApproved, domain.StatusApproved,
	domain.StatusPending, domain.StatusRejected, domain.StatusOffline,
}

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, "seeder")

	ctx := context.Background()
	store := memory.New(snapshotStore(ctx, cfg))
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}

	log.Info().Int("hotels", cfg.SeedHotels).Str("backend", cfg.SnapshotBackend).Msg("seeder starting")

	sem := semaphore.NewWeighted(int64(seedWorkers))
	var wg sync.WaitGroup
	for i := 0; i < cfg.SeedHotels; i++ {
		i := i

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			defer sem.Release(1)

			h := demoHotel(n)
			if err := store.UpsertHotel(ctx, h); err != nil {
				log.Warn().Str("id", h.ID).Err(err).Msg("seed upsert failed")
				return
			}
		}(i)
	}
	wg.Wait()

	if err := store.Persist(ctx); err != nil {
		log.Fatal().Err(err).Msg("snapshot save failed")
	}
	log.Info().Msg("seeding completed")
}

// demoHotel derives a deterministic listing from its index so repeated runs
// produce the same snapshot.
func demoHotel(n int) domain.Hotel {
	id := fmt.Sprintf("h%d", 100+n)
	district := districts[n%len(districts)]
	base := int64(180 + 40*(n%12))
	now := time.Now().UTC().Format(time.RFC3339)
	status := statuses[n%len(statuses)]
	reason := ""
	if status == domain.StatusRejected {
		reason = "incomplete listing details"
	}
	return domain.Hotel{
		ID:         id,
		MerchantID: "u1",
		Name:       fmt.Sprintf("Yisu %s Inn %d", district, n+1),
		NameAlt:    fmt.Sprintf("Yisu %s Inn %d", district, n+1),
		Address:    fmt.Sprintf("%d Demo Street, %s District, Hangzhou", 10+n, district),
		Stars:      1 + n%5,
		Rooms: []domain.RoomOption{
			{ID: fmt.Sprintf("r_%s_1", id), Name: "Queen Room", Price: base},
			{ID: fmt.Sprintf("r_%s_2", id), Name: "Twin Room", Price: base + 60},
		},
		OpenedOn:     fmt.Sprintf("20%02d-0%d-01", 10+n%15, 1+n%9),
		Status:       status,
		RejectReason: reason,
		Nearby:       fmt.Sprintf("%s metro station, riverside park", district),
		Images:       []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func snapshotStore(ctx context.Context, cfg shared.Config) domain.SnapshotStore {
	switch cfg.SnapshotBackend {
	case "redis":
		return redisad.NewSnapshotStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		st := mysqlstore.New(db)
		if err := st.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("snapshot schema failed")
		}
		return st
	default:
		return snapshot.NewFileStore(cfg.SnapshotPath)
	}
}
