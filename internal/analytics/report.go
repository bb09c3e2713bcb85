// Package analytics derives the sales views shown on the admin dashboard
// from the archived order collection. Delivered totals are frozen, so every
// figure here is historical fact rather than a live recomputation.
package analytics

import (
	"sort"
	"time"

	"khanabuddy/internal/models"
	"khanabuddy/internal/orders"
)

// TodayStats summarizes the orders delivered today.
type TodayStats struct {
	TotalOrders   int            `json:"totalOrders"`
	TotalRevenue  float64        `json:"totalRevenue"`
	AvgOrderValue float64        `json:"avgOrderValue"`
	Orders        []models.Order `json:"orders"`
}

// Summary covers the whole archive.
type Summary struct {
	CompletedOrders int     `json:"completedOrders"`
	TotalIncome     float64 `json:"totalIncome"`
}

// ItemSales counts how many units of one item were sold, derived from the
// flattened per-unit item lists.
type ItemSales struct {
	Name  string `json:"name"`
	Units int    `json:"units"`
}

// Service reads the archived orders.
type Service struct {
	orders *orders.Service
}

// NewService creates the analytics service
func NewService(o *orders.Service) *Service {
	return &Service{orders: o}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Today returns the count, revenue and average order value of orders
// delivered on the given day.
func (s *Service) Today(now time.Time) TodayStats {
	stats := TodayStats{Orders: []models.Order{}}
	for _, o := range s.orders.Delivered() {
		if o.DeliveredTime == nil || !sameDay(*o.DeliveredTime, now) {
			continue
		}
		stats.Orders = append(stats.Orders, o)
		stats.TotalRevenue += o.Total
	}
	stats.TotalOrders = len(stats.Orders)
	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}
	return stats
}

// Overall returns the archive-wide order count and income
func (s *Service) Overall() Summary {
	var sum Summary
	for _, o := range s.orders.Delivered() {
		sum.CompletedOrders++
		sum.TotalIncome += o.Total
	}
	return sum
}

// ItemCounts aggregates units sold per item name across the archive, most
// sold first. One flattened list entry counts as one unit.
func (s *Service) ItemCounts() []ItemSales {
	counts := make(map[string]int)
	var names []string
	for _, o := range s.orders.Delivered() {
		for _, name := range o.Items {
			if _, seen := counts[name]; !seen {
				names = append(names, name)
			}
			counts[name]++
		}
	}
	sales := make([]ItemSales, 0, len(names))
	for _, name := range names {
		sales = append(sales, ItemSales{Name: name, Units: counts[name]})
	}
	sort.SliceStable(sales, func(i, j int) bool {
		if sales[i].Units != sales[j].Units {
			return sales[i].Units > sales[j].Units
		}
		return sales[i].Name < sales[j].Name
	})
	return sales
}

// HourlyRevenue buckets the given day's delivered revenue by hour of
// delivery, for the daily report chart.
func (s *Service) HourlyRevenue(day time.Time) [24]float64 {
	var buckets [24]float64
	for _, o := range s.orders.Delivered() {
		if o.DeliveredTime == nil || !sameDay(*o.DeliveredTime, day) {
			continue
		}
		buckets[o.DeliveredTime.Hour()] += o.Total
	}
	return buckets
}
