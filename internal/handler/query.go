package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/ecommerce-api/internal/auth"
	"github.com/sakif/ecommerce-api/internal/model"
	"github.com/sakif/ecommerce-api/internal/service"
)

// QueryHandler exposes the raw SQL endpoint.
//
// The route requires a bearer token (middleware) AND the admin username
// (service gate). The query text is executed verbatim — see
// service.AdminService for the trust-boundary notes.
type QueryHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(admin *service.AdminService, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{admin: admin, logger: logger}
}

// HandleQuery executes raw SQL for the admin.
//
// HTTP: POST /api/query (bearer token required, username must be "admin")
// BODY: {"query": "SELECT ..."}
//
// 200 with {"results": [...], "row_count": N}; 403 for any non-admin
// caller regardless of query content; 400 with the store's fault text when
// the SQL fails to execute.
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "Invalid token",
		})
		return
	}

	var req model.QueryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.admin.ExecuteQuery(r.Context(), userID, req)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
