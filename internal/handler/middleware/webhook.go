package middleware

import (
	"crypto/subtle"
	"net/http"

	"guildhall/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const webhookSecretHeader = "X-Webhook-Secret"

// RequireWebhookSecret gates the payment provider callback. The provider is
// not a logged-in user, so it authenticates with a shared secret instead of a
// token.
func RequireWebhookSecret(cfg config.BillingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.WebhookSecret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid webhook secret",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
