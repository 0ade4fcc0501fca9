package domain

import "context"

// Snapshot is the whole dataset persisted and loaded in one piece; there is
// no incremental diffing against the backing store.
type Snapshot struct {
	Users  []User  `json:"users"`
	Hotels []Hotel `json:"hotels"`
}

// SnapshotStore is the durable side of the repository. Load returns
// ErrNotFound when no snapshot has ever been saved.
type SnapshotStore interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
}

// Repository is the in-process collection the engine works against.
// Mutating callers are expected to follow a write with Persist before
// answering the client.
type Repository interface {
	// Hotels
	ListHotels(ctx context.Context) ([]Hotel, error)
	FindHotel(ctx context.Context, id string) (Hotel, error)
	UpsertHotel(ctx context.Context, h Hotel) error
	NextHotelID(ctx context.Context) (string, error)

	// Users
	FindUser(ctx context.Context, id string) (User, error)
	FindUserByName(ctx context.Context, username string) (User, error)
	AddUser(ctx context.Context, u User) error
	NextUserID(ctx context.Context) (string, error)

	Persist(ctx context.Context) error
}

// SessionStore maps opaque bearer tokens to sessions.
type SessionStore interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (Session, bool, error)
	Del(ctx context.Context, token string) error
}
