package middleware

import (
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SubscriptionLoader resolves the set of subscription levels a user
// currently holds (profile level plus active paid plans).
type SubscriptionLoader interface {
	LevelsForUser(userID uint) ([]string, error)
}

// AttachSubscriptions loads the caller's levels into the context without
// enforcing anything. Missing identity falls back to Basic.
func AttachSubscriptions(loader SubscriptionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			c.Set("subscriptionLevels", []string{model.LevelBasic})
			c.Next()
			return
		}

		levels, err := loader.LevelsForUser(claims.UserID)
		if err != nil || len(levels) == 0 {
			levels = []string{model.LevelBasic}
		}
		c.Set("subscriptionLevels", levels)
		c.Next()
	}
}

// RequireSubscription rejects callers whose levels do not intersect the
// required set. The 403 body names both sides so the frontend can prompt
// an upgrade.
func RequireSubscription(loader SubscriptionLoader, required ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		levels, err := loader.LevelsForUser(claims.UserID)
		if err != nil || len(levels) == 0 {
			levels = []string{model.LevelBasic}
		}

		if !intersects(levels, required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":        "Subscription upgrade required",
				"requiredLevels": required,
				"userLevels":     levels,
			})
			return
		}

		c.Set("subscriptionLevels", levels)
		c.Next()
	}
}

func intersects(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, l := range have {
		set[l] = true
	}
	for _, l := range want {
		if set[l] {
			return true
		}
	}
	return false
}
