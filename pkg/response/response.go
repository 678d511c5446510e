package response

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/cs-study-hub/notes-api/pkg/errors"
)

// Status discriminator values of the legacy JSON contract.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusError   = "error"
)

// Failure is the common body for both business failures ("failed") and
// infrastructure errors ("error"). Detail carries the underlying store
// message when one exists; exposing it mirrors the legacy behaviour and
// is flagged as an information-disclosure gap in DESIGN.md.
type Failure struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// JSON sends a success payload. Payload structs carry their own legacy
// "status" field.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, payload)
}

// Error renders an error according to its kind: business failures become
// status "failed", infrastructure faults become status "error".
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)

	body := Failure{
		Status:  StatusError,
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	if appErr.Kind == appErrors.KindBusiness {
		body.Status = StatusFailed
	}
	if wrapped := appErr.Unwrap(); wrapped != nil {
		body.Detail = wrapped.Error()
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, body)
}
