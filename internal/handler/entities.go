package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradepost-hq/tradepost/internal/domain"
	"github.com/tradepost-hq/tradepost/internal/entity"
	"github.com/tradepost-hq/tradepost/internal/logger"
	"github.com/tradepost-hq/tradepost/internal/validation"
)

// HandleListEntities returns all local records of one entity type.
func HandleListEntities[T domain.Record](svc entity.Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.List(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: recs})
	}
}

// HandleGetEntity returns one record by id.
func HandleGetEntity[T domain.Record](svc entity.Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingIDParam)
			return
		}

		rec, err := svc.Get(r.Context(), id)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: rec})
	}
}

// HandleCreateEntity creates a new record. An id in the body is honored;
// otherwise one is assigned.
func HandleCreateEntity[T domain.Record](svc entity.Service[T], newRecord func() T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		rec := newRecord()
		if err := json.NewDecoder(r.Body).Decode(rec); err != nil {
			log.Error(LogMsgDecodeFailed, "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		saved, err := svc.Save(r.Context(), rec)
		if err != nil {
			log.Error(ErrMsgSaveFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Data: saved})
	}
}

// HandleUpdateEntity replaces a record with the full snapshot in the body.
// The snapshot is checked against the store's JSON schema before decoding.
func HandleUpdateEntity[T domain.Record](svc entity.Service[T], newRecord func() T, storeName string, payloads validation.PayloadValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id := chi.URLParam(r, "id")
		if id == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingIDParam)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if payloads != nil {
			if err := payloads.ValidatePayload(storeName, body); err != nil {
				log.Warn(LogMsgPayloadRejected, "store", storeName, "id", id, "error", err)
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		rec := newRecord()
		if err := json.Unmarshal(body, rec); err != nil {
			log.Error(LogMsgDecodeFailed, "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		rec.SetEntityID(id)

		saved, err := svc.Save(r.Context(), rec)
		if err != nil {
			log.Error(ErrMsgSaveFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: saved})
	}
}

// HandleDeleteEntity removes a record by id.
func HandleDeleteEntity[T domain.Record](svc entity.Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingIDParam)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgDeleteFailed, "id", id, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "deleted"})
	}
}
