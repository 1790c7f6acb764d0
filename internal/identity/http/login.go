package http

import (
	"net/http"

	"github.com/logisticsfuture/identity/internal/identity/service"
	"github.com/logisticsfuture/identity/pkg/httpx"
)

// HandleLogin godoc
//
//	@Summary		Login Endpoint
//	@Description	Verify credentials and issue an access/refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		service.LoginInput	true	"Credentials"
//	@Success		200		{object}	domain.TokenPair	"accessToken, refreshToken"
//	@Failure		401		{object}	MessageResponse		"invalid credentials"
//	@Failure		500		{object}	MessageResponse
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in service.LoginInput
	if err := httpx.ReadJSON(w, r, &in); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	pair, err := h.AuthService.Login(ctx, in)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}
