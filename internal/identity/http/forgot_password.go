package http

import (
	"net/http"

	"github.com/logisticsfuture/identity/internal/identity/service"
	"github.com/logisticsfuture/identity/pkg/httpx"
)

// HandleForgotPassword godoc
//
//	@Summary		Forgot Password Endpoint
//	@Description	Issue a single-use password reset token and send it to the account email. The response is identical whether or not the email exists.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		service.ForgotPasswordInput	true	"Account email"
//	@Success		200		{object}	MessageResponse
//	@Failure		502		{object}	MessageResponse	"notification delivery failed"
//	@Failure		500		{object}	MessageResponse
//	@Router			/v1/auth/forgot-password [post].
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in service.ForgotPasswordInput
	if err := httpx.ReadJSON(w, r, &in); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	if err := h.AuthService.ForgotPassword(ctx, in); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeMessage(w, http.StatusOK, "If the email exists, a reset link has been sent")
}
