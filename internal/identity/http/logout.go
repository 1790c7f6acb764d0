package http

import (
	"net/http"

	"github.com/logisticsfuture/identity/internal/identity/service"
	"github.com/logisticsfuture/identity/pkg/httpx"
)

// HandleLogout godoc
//
//	@Summary		Logout Endpoint
//	@Description	Invalidate a refresh token. Requires only the refresh token itself; access tokens stay valid until expiry.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		service.LogoutInput	true	"Refresh token"
//	@Success		200		{object}	MessageResponse
//	@Failure		401		{object}	MessageResponse	"invalid or expired token"
//	@Failure		500		{object}	MessageResponse
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in service.LogoutInput
	if err := httpx.ReadJSON(w, r, &in); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	if err := h.AuthService.Logout(ctx, in); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Logged out successfully")
}
