package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/charusat-labs/attendance-api/pkg/errors"
)

// Envelope carries error payloads in the common contract. Success responses
// keep the legacy flat shape the web client already understands, so JSON
// writes the payload as-is.
type Envelope struct {
	Error *appErrors.Error `json:"error,omitempty"`
}

// JSON sends a success response with the payload as the body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// Attachment streams rendered bytes as a named download. The filename comes
// from caller-supplied fields, so characters that would break or split the
// header are replaced before it is interpolated.
func Attachment(c *gin.Context, filename, contentType string, payload []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+sanitizeFilename(filename)+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

var filenameSanitizer = strings.NewReplacer(`"`, "_", `\`, "_", "\r", "", "\n", "")

func sanitizeFilename(name string) string {
	return filenameSanitizer.Replace(name)
}
