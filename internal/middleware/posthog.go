package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/roomate/household_ledger/internal/utils"
)

// ledgerEvents names the analytics event for each successful ledger route.
var ledgerEvents = map[string]string{
	http.MethodPost + " /api/v1/rooms/:room_id/ledger":         "ledger_entry_created",
	http.MethodPut + " /api/v1/ledger/:entry_id/splits":        "ledger_splits_assigned",
	http.MethodPost + " /api/v1/ledger/:entry_id/splits/equal": "ledger_splits_equalized",
	http.MethodPost + " /api/v1/ledger/splits/:split_id/pay":   "ledger_payment_recorded",
	http.MethodPost + " /api/v1/ledger/:entry_id/cancel":       "ledger_entry_cancelled",
	http.MethodDelete + " /api/v1/ledger/:entry_id":            "ledger_entry_deleted",
	http.MethodGet + " /api/v1/rooms/:room_id/ledger/balances": "ledger_balances_viewed",
}

// PosthogMiddleware tracks successful API calls with PostHog.
// Ledger mutations get named events, other routes are named after their path.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := EventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		for _, param := range c.Params {
			props[param.Key] = param.Value
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventName returns the analytics event for a route, or "" when the route is unknown.
func EventName(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	if name, ok := ledgerEvents[method+" "+fullPath]; ok {
		return name
	}
	name := strings.TrimPrefix(fullPath, "/")
	name = strings.ReplaceAll(name, "/:", "_by_")
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ToLower(method) + "_" + name
}
