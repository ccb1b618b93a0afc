package domain

// Store names for the five entity-type stores. These are used as table keys in
// the local cache, as queue targets, and as path segments on the remote API.
const (
	StoreQuotes          = "quotes"
	StoreCustomers       = "customers"
	StoreExpenses        = "expenses"
	StoreScheduleEntries = "schedule_entries"
	StoreJobPacks        = "job_packs"
)

// StoreNames lists every entity-type store in the order bulk sync visits them.
var StoreNames = []string{
	StoreQuotes,
	StoreCustomers,
	StoreExpenses,
	StoreScheduleEntries,
	StoreJobPacks,
}

// ValidStore reports whether name is one of the known entity-type stores.
func ValidStore(name string) bool {
	for _, s := range StoreNames {
		if s == name {
			return true
		}
	}
	return false
}

// Quote status values
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusDeclined = "declined"
)

// Schedule entry status values
const (
	ScheduleStatusPlanned   = "planned"
	ScheduleStatusConfirmed = "confirmed"
	ScheduleStatusDone      = "done"
	ScheduleStatusCancelled = "cancelled"
)

// Expense categories recognised by reporting
const (
	ExpenseCategoryMaterials = "materials"
	ExpenseCategoryFuel      = "fuel"
	ExpenseCategoryTools     = "tools"
	ExpenseCategoryLabour    = "labour"
	ExpenseCategoryOther     = "other"
)
