package http

import (
	"net/http"

	"github.com/logisticsfuture/identity/internal/identity/service"
	"github.com/logisticsfuture/identity/pkg/httpx"
)

// HandleRefresh godoc
//
//	@Summary		Refresh Endpoint
//	@Description	Exchange a valid refresh token for a new token pair. The old refresh token is rotated and becomes permanently invalid.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		service.RefreshInput	true	"Refresh token"
//	@Success		200		{object}	domain.TokenPair		"accessToken, refreshToken"
//	@Failure		401		{object}	MessageResponse			"invalid or expired token"
//	@Failure		500		{object}	MessageResponse
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in service.RefreshInput
	if err := httpx.ReadJSON(w, r, &in); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	pair, err := h.AuthService.Refresh(ctx, in)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}
