// Package versioning negotiates the API version requested by clients.
package versioning

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Header carries the requested version, e.g. "v1" or "1.0"
const Header = "X-API-Version"

// APIVersion is a major.minor pair
type APIVersion struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

// Current is the version served by this build
var Current = APIVersion{Major: 1, Minor: 0}

func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersion "v1.2" -> APIVersion{1, 2}; an empty header means Current
func ParseVersion(header string) (APIVersion, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Current, nil
	}

	clean := strings.TrimPrefix(strings.ToLower(header), "v")
	parts := strings.SplitN(clean, ".", 2)

	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return APIVersion{}, fmt.Errorf("invalid API version %q", header)
	}
	minor := 0
	if len(parts) > 1 {
		if minor, err = strconv.Atoi(parts[1]); err != nil || minor < 0 {
			return APIVersion{}, fmt.Errorf("invalid API version %q", header)
		}
	}

	return APIVersion{Major: major, Minor: minor}, nil
}

// Middleware rejects versions with a different major than Current and
// echoes the served version back on every response
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(Header, Current.String())

		version, err := ParseVersion(c.GetHeader(Header))
		if err == nil && version.Major != Current.Major {
			err = fmt.Errorf("unsupported API version %s (server speaks %s)", version, Current)
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   err.Error(),
				"message": err.Error(),
				"code":    "UNSUPPORTED_VERSION",
				"data":    nil,
			})
			return
		}

		c.Next()
	}
}
