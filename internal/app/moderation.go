package app

import (
	"context"
	"strings"
	"time"

	"yisu_hotel/internal/domain"
)

// fallback when a rejection arrives without a reason
const unspecifiedReason = "unspecified"

// ModerationService moves listings through the review lifecycle:
// pending -> approved | rejected, approved <-> offline, rejected -> approved.
// Offline is deliberately reachable from any state, matching the observed
// behavior of the system this replaces.
type ModerationService struct {
	repo domain.Repository
}

func NewModerationService(r domain.Repository) *ModerationService {
	return &ModerationService{repo: r}
}

// Approve publishes a listing from any state and clears any rejection note.
func (s *ModerationService) Approve(ctx context.Context, id string) (domain.Hotel, error) {
	return s.transition(ctx, id, func(h *domain.Hotel) error {
		h.Status = domain.StatusApproved
		h.RejectReason = ""
		return nil
	})
}

// Reject turns a listing down and records the reason.
func (s *ModerationService) Reject(ctx context.Context, id, reason string) (domain.Hotel, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = unspecifiedReason
	}
	return s.transition(ctx, id, func(h *domain.Hotel) error {
		h.Status = domain.StatusRejected
		h.RejectReason = reason
		return nil
	})
}

// Offline withdraws a listing without deleting it.
func (s *ModerationService) Offline(ctx context.Context, id string) (domain.Hotel, error) {
	return s.transition(ctx, id, func(h *domain.Hotel) error {
		h.Status = domain.StatusOffline
		return nil
	})
}

// Restore re-publishes an offline listing. Any other starting state is an
// invalid transition.
func (s *ModerationService) Restore(ctx context.Context, id string) (domain.Hotel, error) {
	return s.transition(ctx, id, func(h *domain.Hotel) error {
		if h.Status != domain.StatusOffline {
			return domain.ErrInvalidTransition
		}
		h.Status = domain.StatusApproved
		return nil
	})
}

func (s *ModerationService) transition(ctx context.Context, id string, apply func(*domain.Hotel) error) (domain.Hotel, error) {
	h, err := s.repo.FindHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if err := apply(&h); err != nil {
		return domain.Hotel{}, err
	}
	h.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.UpsertHotel(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	if err := s.repo.Persist(ctx); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}
