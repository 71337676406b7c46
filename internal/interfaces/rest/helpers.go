package rest

import (
	"log"
	"net/http"

	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/errors"
	"github.com/gin-gonic/gin"
)

// GetUserFromContext extracts the authenticated user from gin.Context
func GetUserFromContext(c *gin.Context) *models.UserSession {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil
	}
	user, _ := value.(*models.UserSession)
	return user
}

// RespondAppError sends a standardised JSON error response using pkg/errors
func RespondAppError(c *gin.Context, err error) {
	code := errors.GetHTTPStatus(err)
	errorCode := errors.GetErrorCode(err)
	message := err.Error()

	if code >= 500 {
		log.Printf("❌ ERROR [%d] %s %s: %s", code, c.Request.Method, c.Request.URL.Path, message)
		message = "Internal server error"
	}

	c.JSON(code, gin.H{
		constants.ResponseError: message,
		constants.FieldMessage:  message,
		"code":                  errorCode,
		"data":                  nil,
	})
}

// BindJSON binds JSON and returns true if successful. If failed, it sends bad request error.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondAppError(c, errors.NewValidationError("body", err.Error()))
		return false
	}
	return true
}

// HandleGetEnvelope executes a read action and returns the result wrapped in a JSON key
// Response: { [key]: result }
func HandleGetEnvelope(c *gin.Context, key string, action func() (interface{}, error)) {
	result, err := action()
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{key: result})
}

// HandleMutationEnvelope executes a write action and returns its result wrapped + message
// Response: { message: successMsg, [key]: result } (key omitted if empty)
func HandleMutationEnvelope(c *gin.Context, status int, key, successMsg string, action func() (interface{}, error)) {
	result, err := action()
	if err != nil {
		RespondAppError(c, err)
		return
	}
	response := gin.H{constants.FieldMessage: successMsg}
	if key != "" {
		response[key] = result
	}
	c.JSON(status, response)
}

// HandleDeleteEnvelope executes a delete action and returns a success message
// Response: { message: successMsg }
func HandleDeleteEnvelope(c *gin.Context, successMsg string, action func() error) {
	if err := action(); err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: successMsg})
}

// sessionID returns the session behind the request, or "" for anonymous callers
func sessionID(c *gin.Context) string {
	if user := GetUserFromContext(c); user != nil {
		return user.SessionID
	}
	return ""
}
