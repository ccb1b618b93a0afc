package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tradepost-hq/tradepost/internal/connectivity"
	"github.com/tradepost-hq/tradepost/internal/logger"
	"github.com/tradepost-hq/tradepost/internal/syncer"
)

// HandleSyncStatus reports last sync time, pending count and connectivity.
func HandleSyncStatus(syncService syncer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := syncService.Status(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgStatusFailed, "error", err)
			code, msg := mapServiceErrorToUserMessage(err)
			respondError(w, code, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: status})
	}
}

// HandleSyncDrain triggers an immediate queue drain.
func HandleSyncDrain(syncService syncer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := syncService.Drain(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Warn(ErrMsgDrainFailed, "error", err)
			code, msg := mapServiceErrorToUserMessage(err)
			respondError(w, code, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}

// HandleSyncBulk triggers an immediate full download.
func HandleSyncBulk(syncService syncer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := syncService.BulkSync(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Warn(ErrMsgBulkFailed, "error", err)
			code, msg := mapServiceErrorToUserMessage(err)
			respondError(w, code, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}

// HandleSyncPending lists queued mutations in replay order.
func HandleSyncPending(syncService syncer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := syncService.Pending(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgPendingFailed, "error", err)
			code, msg := mapServiceErrorToUserMessage(err)
			respondError(w, code, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: pending})
	}
}

// ConnectivityRequest sets the reported connectivity state.
type ConnectivityRequest struct {
	Online bool `json:"online"`
}

// HandleSetConnectivity flips the connectivity state. Transitioning to
// online kicks off the reconnect sequence via the event bus.
func HandleSetConnectivity(monitor connectivity.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConnectivityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.FromContext(r.Context()).Error(LogMsgDecodeFailed, "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		monitor.Set(r.Context(), req.Online)

		respondJSON(w, http.StatusOK, DataResponse{Data: ConnectivityRequest{Online: monitor.IsOnline()}})
	}
}

// HandleLogout wipes every local record, the mutation queue and sync
// metadata. Unreplayed offline work is discarded.
func HandleLogout(syncService syncer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := syncService.ClearLocal(r.Context()); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgLogoutFailed, "error", err)
			code, msg := mapServiceErrorToUserMessage(err)
			respondError(w, code, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "local state cleared"})
	}
}
