package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("smtp timeout")
	err := ServiceUnavailable("try later", cause)

	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
	assert.Equal(t, "try later", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad").Code)
	assert.Equal(t, http.StatusNotFound, NotFound("missing").Code)
	assert.Equal(t, http.StatusTooManyRequests, TooManyRequests("slow down").Code)
	assert.Equal(t, "Internal Server Error", Internal(nil).Message)
}
