package middleware

import (
	"net/http"
	"strings"

	"officepool/auth"
	"officepool/models"
	"officepool/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const identityKey = "identity"

// CurrentIdentity returns the verified caller, if any
func CurrentIdentity(c *gin.Context) (*auth.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok && identity != nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// RequireAuth rejects requests without a valid bearer token and makes sure
// the caller exists as a user before the handler runs
func RequireAuth(verifier auth.Verifier, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log.WithError(err).Debug("Rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
			return
		}

		if !syncUser(c, users, identity) {
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid bearer token is present.
// A missing or unverifiable token leaves the request anonymous.
func OptionalAuth(verifier auth.Verifier, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log.WithError(err).Info("Ignoring unverifiable bearer token on optional auth route")
			c.Next()
			return
		}

		if !syncUser(c, users, identity) {
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func syncUser(c *gin.Context, users service.UserService, identity *auth.Identity) bool {
	_, err := users.EnsureUser(c.Request.Context(), &models.User{
		ID:        identity.UserID,
		Name:      identity.Name,
		Email:     identity.Email,
		AvatarURL: identity.AvatarURL,
	})
	if err != nil {
		log.WithError(err).WithField("userID", identity.UserID).Error("Failed to sync authenticated user")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return false
	}
	return true
}
