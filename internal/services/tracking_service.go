package services

import (
	"database/sql"
	"strings"

	"robomart/internal/domain"
	"robomart/internal/repos"
)

// TrackingStage is one step of the 4-stage progress indicator.
type TrackingStage struct {
	Status string
	Active bool
}

// TrackingResult renders to found / not-found; Cancelled greys the bar out.
type TrackingResult struct {
	Found     bool
	Order     domain.Order
	Stages    []TrackingStage
	Cancelled bool
}

type TrackingService struct {
	Orders *repos.OrderRepo
}

func NewTrackingService(orders *repos.OrderRepo) *TrackingService {
	return &TrackingService{Orders: orders}
}

// Lookup resolves an order number to its progress view. Every stage up to
// and including the current one is active.
func (s *TrackingService) Lookup(orderNumber string) (TrackingResult, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	o, err := s.Orders.GetByNumber(orderNumber)
	if err == sql.ErrNoRows {
		return TrackingResult{}, nil
	}
	if err != nil {
		return TrackingResult{}, err
	}

	idx := domain.StageIndex(o.Status)
	stages := make([]TrackingStage, len(domain.TrackingStages))
	for i, st := range domain.TrackingStages {
		stages[i] = TrackingStage{Status: st, Active: idx >= 0 && i <= idx}
	}
	return TrackingResult{
		Found:     true,
		Order:     o,
		Stages:    stages,
		Cancelled: o.Status == domain.StatusCancelled,
	}, nil
}
