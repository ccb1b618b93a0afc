package entity

import (
	"github.com/tradepost-hq/tradepost/internal/domain"
)

// Facades holds one typed facade per entity type, all sharing the same
// store, queue and backend.
type Facades struct {
	Quotes          Service[*domain.Quote]
	Customers       Service[*domain.Customer]
	Expenses        Service[*domain.Expense]
	ScheduleEntries Service[*domain.ScheduleEntry]
	JobPacks        Service[*domain.JobPack]
}

// NewFacades builds facades for every known entity type.
func NewFacades(deps Deps) *Facades {
	return &Facades{
		Quotes:          NewService(domain.StoreQuotes, func() *domain.Quote { return &domain.Quote{} }, deps),
		Customers:       NewService(domain.StoreCustomers, func() *domain.Customer { return &domain.Customer{} }, deps),
		Expenses:        NewService(domain.StoreExpenses, func() *domain.Expense { return &domain.Expense{} }, deps),
		ScheduleEntries: NewService(domain.StoreScheduleEntries, func() *domain.ScheduleEntry { return &domain.ScheduleEntry{} }, deps),
		JobPacks:        NewService(domain.StoreJobPacks, func() *domain.JobPack { return &domain.JobPack{} }, deps),
	}
}
