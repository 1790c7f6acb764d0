package http

import (
	"net/http"

	"github.com/logisticsfuture/identity/internal/identity/service"
	"github.com/logisticsfuture/identity/pkg/httpx"
)

// HandleRegister godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new account. Passwords must match and the email must not be in use.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		service.RegisterInput	true	"Registration details"
//	@Success		200		{object}	domain.PublicUser		"id, email, firstName, lastName"
//	@Failure		400		{object}	MessageResponse			"password mismatch or email taken"
//	@Failure		500		{object}	MessageResponse
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in service.RegisterInput
	if err := httpx.ReadJSON(w, r, &in); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	user, err := h.AuthService.Register(ctx, in)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}
