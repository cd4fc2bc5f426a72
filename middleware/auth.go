package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/zapkash/vendor-console/utils"
)

// VendorAuth validates the bearer token the platform's auth service
// issued to the vendor. The console keeps no credential store of its
// own; the same token is forwarded to the platform on every call made
// on the vendor's behalf.
func VendorAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			utils.LogError("Invalid token: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.LogError("Invalid token claims")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		vendorIDClaim, ok := claims["vendor_id"].(float64)
		if !ok {
			utils.LogError("Token missing vendor_id claim")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		vendorID := uint(vendorIDClaim)
		c.Set("vendor_id", vendorID)
		c.Set("vendor_token", tokenString)
		utils.LogDebug("Vendor %d authenticated", vendorID)
		c.Next()
	}
}

// VendorID pulls the authenticated vendor id out of the context.
func VendorID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("vendor_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// VendorToken pulls the raw bearer token out of the context for
// forwarding to the platform.
func VendorToken(c *gin.Context) string {
	return c.GetString("vendor_token")
}
