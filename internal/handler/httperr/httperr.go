package httperr

import (
	"net/http"

	"tg-storefront/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int  `json:"-"`
	OK     bool `json:"ok"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

var notFound = []error{
	errs.ErrUserNotFound,
	errs.ErrProductNotFound,
	errs.ErrFlavorNotFound,
	errs.ErrCategoryNotFound,
	errs.ErrPickupPointNotFound,
}

// Abort classifies a usecase error into the response taxonomy. Validation
// messages come from the domain and are safe to echo; anything unclassified
// is reported as a generic 500.
func Abort(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errs.Is(err, errs.ErrVersionConflict):
		AbortWithError(c, http.StatusConflict, err, "Version conflict, reload and retry", nil)
	case errs.Is(err, errs.ErrDuplicateKey):
		AbortWithError(c, http.StatusConflict, err, "Duplicate key", nil)
	default:
		for _, sentinel := range notFound {
			if errs.Is(err, sentinel) {
				AbortWithError(c, http.StatusNotFound, err, capitalize(sentinel.Error()), nil)
				return
			}
		}
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
