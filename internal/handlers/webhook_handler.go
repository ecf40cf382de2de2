package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/eventhive/internal/helpers"
)

// RazorpayWebhook is permanently disabled: the provider integration was
// retired in favor of the simulated verification flow.
func RazorpayWebhook(c *gin.Context) {
	helpers.RespondWithError(c, http.StatusGone, "Payment provider webhooks are no longer supported.")
}
