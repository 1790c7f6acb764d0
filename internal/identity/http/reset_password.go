package http

import (
	"net/http"

	"github.com/logisticsfuture/identity/internal/identity/service"
	"github.com/logisticsfuture/identity/pkg/httpx"
)

// HandleResetPassword godoc
//
//	@Summary		Reset Password Endpoint
//	@Description	Consume a reset token and replace the account password. Each token works exactly once.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		service.ResetPasswordInput	true	"Reset token and new password"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	MessageResponse	"password mismatch"
//	@Failure		401		{object}	MessageResponse	"invalid, expired or already used token"
//	@Failure		500		{object}	MessageResponse
//	@Router			/v1/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in service.ResetPasswordInput
	if err := httpx.ReadJSON(w, r, &in); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	if err := h.AuthService.ResetPassword(ctx, in); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password reset successfully")
}
