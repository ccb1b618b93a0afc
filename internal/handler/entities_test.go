package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradepost-hq/tradepost/internal/domain"
	"github.com/tradepost-hq/tradepost/internal/validation"
)

func newQuote() *domain.Quote { return &domain.Quote{} }

// quoteRouter mounts the CRUD handlers the way the server does, so URL
// params resolve through chi.
func quoteRouter(svc *MockQuoteService, payloads validation.PayloadValidator) chi.Router {
	r := chi.NewRouter()
	r.Get("/", HandleListEntities[*domain.Quote](svc))
	r.Post("/", HandleCreateEntity(svc, newQuote))
	r.Get("/{id}", HandleGetEntity[*domain.Quote](svc))
	r.Put("/{id}", HandleUpdateEntity(svc, newQuote, domain.StoreQuotes, payloads))
	r.Delete("/{id}", HandleDeleteEntity[*domain.Quote](svc))
	return r
}

func TestHandleListEntities(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*MockQuoteService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			setupMocks: func(ms *MockQuoteService) {
				ms.On("List", mock.Anything).Return([]*domain.Quote{
					{ID: "q-1", CustomerID: "c-1", Title: "Fence repair", Status: domain.QuoteStatusDraft},
					{ID: "q-2", CustomerID: "c-2", Title: "Deck build", Status: domain.QuoteStatusSent},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"q-1"`,
		},
		{
			name: "Store Error",
			setupMocks: func(ms *MockQuoteService) {
				ms.On("List", mock.Anything).Return(nil, domain.ErrStoreUnavailable)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgStoreError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockQuoteService)
			tt.setupMocks(svc)

			req := httptest.NewRequest("GET", "/", nil)
			rec := httptest.NewRecorder()
			quoteRouter(svc, nil).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGetEntity(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setupMocks     func(*MockQuoteService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Found",
			id:   "q-1",
			setupMocks: func(ms *MockQuoteService) {
				ms.On("Get", mock.Anything, "q-1").Return(&domain.Quote{ID: "q-1", CustomerID: "c-1", Title: "Fence repair", Status: domain.QuoteStatusDraft}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Fence repair"`,
		},
		{
			name: "Not Found",
			id:   "missing",
			setupMocks: func(ms *MockQuoteService) {
				ms.On("Get", mock.Anything, "missing").Return(nil, domain.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgRecordNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockQuoteService)
			tt.setupMocks(svc)

			req := httptest.NewRequest("GET", "/"+tt.id, nil)
			rec := httptest.NewRecorder()
			quoteRouter(svc, nil).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleCreateEntity(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*MockQuoteService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: `{"customer_id":"c-1","title":"Fence repair","status":"draft"}`,
			setupMocks: func(ms *MockQuoteService) {
				ms.On("Save", mock.Anything, mock.MatchedBy(func(q *domain.Quote) bool {
					return q.Title == "Fence repair"
				})).Return(&domain.Quote{ID: "q-1", CustomerID: "c-1", Title: "Fence repair", Status: domain.QuoteStatusDraft}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":"q-1"`,
		},
		{
			name:           "Invalid JSON",
			body:           "not json",
			setupMocks:     func(ms *MockQuoteService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Validation Failure",
			body: `{"title":"No customer","status":"draft"}`,
			setupMocks: func(ms *MockQuoteService) {
				ms.On("Save", mock.Anything, mock.Anything).Return(nil, domain.ErrValidationFailed)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgValidationError,
		},
		{
			name: "Offline Remote",
			body: `{"customer_id":"c-1","title":"Fence repair","status":"draft"}`,
			setupMocks: func(ms *MockQuoteService) {
				ms.On("Save", mock.Anything, mock.Anything).Return(nil, domain.ErrRemoteFailure)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   ErrMsgRemoteFailureError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockQuoteService)
			tt.setupMocks(svc)

			req := httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			quoteRouter(svc, nil).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleUpdateEntity(t *testing.T) {
	payloads, err := validation.NewPayloadValidator()
	require.NoError(t, err)

	t.Run("valid snapshot passes schema and saves with URL id", func(t *testing.T) {
		svc := new(MockQuoteService)
		svc.On("Save", mock.Anything, mock.MatchedBy(func(q *domain.Quote) bool {
			return q.ID == "q-1" && q.Title == "Fence repair"
		})).Return(&domain.Quote{ID: "q-1", CustomerID: "c-1", Title: "Fence repair", Status: domain.QuoteStatusSent}, nil)

		body := `{"id":"q-1","customer_id":"c-1","title":"Fence repair","status":"sent"}`
		req := httptest.NewRequest("PUT", "/q-1", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		quoteRouter(svc, payloads).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"sent"`)
		svc.AssertExpectations(t)
	})

	t.Run("snapshot missing required field is rejected before save", func(t *testing.T) {
		svc := new(MockQuoteService)

		body := `{"id":"q-1","title":"Fence repair","status":"sent"}`
		req := httptest.NewRequest("PUT", "/q-1", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		quoteRouter(svc, payloads).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("bad status enum is rejected before save", func(t *testing.T) {
		svc := new(MockQuoteService)

		body := `{"id":"q-1","customer_id":"c-1","title":"Fence repair","status":"bogus"}`
		req := httptest.NewRequest("PUT", "/q-1", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		quoteRouter(svc, payloads).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestHandleDeleteEntity(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setupMocks     func(*MockQuoteService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			id:   "q-1",
			setupMocks: func(ms *MockQuoteService) {
				ms.On("Delete", mock.Anything, "q-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "deleted",
		},
		{
			name: "Remote Failure",
			id:   "q-1",
			setupMocks: func(ms *MockQuoteService) {
				ms.On("Delete", mock.Anything, "q-1").Return(domain.ErrRemoteFailure)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   ErrMsgRemoteFailureError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockQuoteService)
			tt.setupMocks(svc)

			req := httptest.NewRequest("DELETE", "/"+tt.id, nil)
			rec := httptest.NewRecorder()
			quoteRouter(svc, nil).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
