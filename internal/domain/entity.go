package domain

import (
	"encoding/json"
	"time"
)

// Record is the contract every entity payload satisfies. The store and queue
// are agnostic to the payload's internal shape; only the id is required.
type Record interface {
	EntityID() string
	SetEntityID(id string)
}

// RawRecord is an opaque entity payload paired with its extracted id, as held
// by the local entity store.
type RawRecord struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// NewRawRecord wraps an opaque payload, extracting the id field it must carry.
func NewRawRecord(data json.RawMessage) (RawRecord, error) {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return RawRecord{}, err
	}
	if probe.ID == "" {
		return RawRecord{}, ErrMissingEntityID
	}
	return RawRecord{ID: probe.ID, Data: data}, nil
}

// LineItem is one priced line on a quote.
type LineItem struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

// Quote is a priced offer of work for a customer.
type Quote struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id" validate:"required"`
	Title      string     `json:"title" validate:"required"`
	Status     string     `json:"status" validate:"oneof=draft sent accepted declined"`
	Items      []LineItem `json:"items" validate:"dive"`
	TaxRate    float64    `json:"tax_rate" validate:"gte=0,lte=1"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (q *Quote) EntityID() string      { return q.ID }
func (q *Quote) SetEntityID(id string) { q.ID = id }

// Subtotal returns the pre-tax total of all line items.
func (q *Quote) Subtotal() float64 {
	var total float64
	for _, item := range q.Items {
		total += item.Quantity * item.UnitPrice
	}
	return total
}

// Total returns the quote total including tax.
func (q *Quote) Total() float64 {
	return q.Subtotal() * (1 + q.TaxRate)
}

// Customer is a person or business work is done for.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) EntityID() string      { return c.ID }
func (c *Customer) SetEntityID(id string) { c.ID = id }

// Expense is a cost recorded against the business, optionally tied to a job.
type Expense struct {
	ID          string    `json:"id"`
	JobPackID   string    `json:"job_pack_id,omitempty"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category" validate:"oneof=materials fuel tools labour other"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	ReceiptURL  string    `json:"receipt_url,omitempty" validate:"omitempty,url"`
	IncurredAt  time.Time `json:"incurred_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *Expense) EntityID() string      { return e.ID }
func (e *Expense) SetEntityID(id string) { e.ID = id }

// ScheduleEntry is a block of planned work assigned to workers.
type ScheduleEntry struct {
	ID         string    `json:"id"`
	JobPackID  string    `json:"job_pack_id,omitempty"`
	CustomerID string    `json:"customer_id,omitempty"`
	Title      string    `json:"title" validate:"required"`
	Status     string    `json:"status" validate:"oneof=planned confirmed done cancelled"`
	StartsAt   time.Time `json:"starts_at" validate:"required"`
	EndsAt     time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	WorkerIDs  []string  `json:"worker_ids,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *ScheduleEntry) EntityID() string      { return s.ID }
func (s *ScheduleEntry) SetEntityID(id string) { s.ID = id }

// JobPack bundles the documents and state for one job: the accepted quote,
// schedule entries, and expenses hang off it.
type JobPack struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id" validate:"required"`
	QuoteID    string    `json:"quote_id,omitempty"`
	Name       string    `json:"name" validate:"required"`
	SiteNotes  string    `json:"site_notes,omitempty"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (j *JobPack) EntityID() string      { return j.ID }
func (j *JobPack) SetEntityID(id string) { j.ID = id }
