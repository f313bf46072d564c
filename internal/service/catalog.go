package service

import (
	"salon/internal/calendar"
)

// Catalog is the public view of the working day and what can be booked.
type Catalog struct {
	Open          calendar.TimeOfDay  `json:"open"`
	Close         calendar.TimeOfDay  `json:"close"`
	Breaks        []calendar.Interval `json:"breaks"`
	BufferMinutes int                 `json:"buffer_minutes"`
	StepMinutes   int                 `json:"step_minutes"`
	Services      []calendar.Service  `json:"services"`
	Styles        []calendar.Style    `json:"styles"`
}

type CatalogServiceImpl struct {
	rules *calendar.Rules
}

func NewCatalogService(rules *calendar.Rules) *CatalogServiceImpl {
	return &CatalogServiceImpl{rules: rules}
}

func (s *CatalogServiceImpl) Catalog() Catalog {
	return Catalog{
		Open:          s.rules.Open(),
		Close:         s.rules.Close(),
		Breaks:        s.rules.Breaks(),
		BufferMinutes: s.rules.Buffer(),
		StepMinutes:   s.rules.Step(),
		Services:      s.rules.Services(),
		Styles:        s.rules.Styles(),
	}
}

func (s *CatalogServiceImpl) Rules() *calendar.Rules {
	return s.rules
}
