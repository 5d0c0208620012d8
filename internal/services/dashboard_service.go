package services

import (
	"robomart/internal/repos"

	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalProducts int
	TotalOrders   int
	Revenue       decimal.Decimal
}

type DashboardService struct {
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
}

func NewDashboardService(prods *repos.ProductRepo, orders *repos.OrderRepo) *DashboardService {
	return &DashboardService{Prods: prods, Orders: orders}
}

func (s *DashboardService) Stats() (DashboardStats, error) {
	products, err := s.Prods.Count()
	if err != nil {
		return DashboardStats{}, err
	}
	orders, err := s.Orders.Count()
	if err != nil {
		return DashboardStats{}, err
	}
	raw, err := s.Orders.Revenue()
	if err != nil {
		return DashboardStats{}, err
	}
	revenue, err := decimal.NewFromString(raw)
	if err != nil {
		return DashboardStats{}, err
	}
	return DashboardStats{TotalProducts: products, TotalOrders: orders, Revenue: revenue}, nil
}
