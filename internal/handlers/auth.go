package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/readiness-service/internal/config"
	"github.com/SAP-F-2025/readiness-service/internal/utils"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = "user_id"
	userIDHeader = "X-User-ID"
)

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// NewCasdoorParser returns a TokenParser for the configured Casdoor application,
// or nil when Casdoor is not configured.
func NewCasdoorParser(cfg config.AuthConfig) TokenParser {
	if !cfg.Enabled() {
		return nil
	}
	return casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.OrganizationName,
		cfg.ApplicationName,
	)
}

// AuthMiddleware resolves the caller's user id from a Casdoor bearer token.
// With allowHeader set, a request without a token may name its user in X-User-ID.
func AuthMiddleware(parser TokenParser, allowHeader bool, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok && parser != nil {
			claims, err := parser.ParseJwtToken(token)
			if err != nil {
				logger.Warn("Rejected bearer token", "request_id", c.GetString("request_id"), "error", err)
				abortUnauthorized(c, "Invalid or expired token")
				return
			}
			userID := claims.User.Id
			if userID == "" {
				userID = claims.RegisteredClaims.Subject
			}
			if userID == "" {
				abortUnauthorized(c, "Token has no subject")
				return
			}
			c.Set(userIDKey, userID)
			c.Next()
			return
		}

		if allowHeader {
			if userID := strings.TrimSpace(c.GetHeader(userIDHeader)); userID != "" {
				c.Set(userIDKey, userID)
				c.Next()
				return
			}
		}

		abortUnauthorized(c, "User not authenticated")
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: message})
}
