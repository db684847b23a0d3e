package domain

import "time"

// Category группа услуг компании
type Category struct {
	ID        int64
	CompanyID int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service услуга компании
type Service struct {
	ID              int64
	CompanyID       int64
	CategoryID      int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool // soft delete
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SumDuration суммарная длительность набора услуг в минутах
func SumDuration(services []*Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}

// SumPrice суммарная стоимость набора услуг
func SumPrice(services []*Service) float64 {
	total := 0.0
	for _, s := range services {
		total += s.Price
	}
	return total
}

// CategoryIDs возвращает уникальные категории набора услуг
func CategoryIDs(services []*Service) []int64 {
	seen := make(map[int64]struct{}, len(services))
	ids := make([]int64, 0, len(services))
	for _, s := range services {
		if _, ok := seen[s.CategoryID]; ok {
			continue
		}
		seen[s.CategoryID] = struct{}{}
		ids = append(ids, s.CategoryID)
	}
	return ids
}
