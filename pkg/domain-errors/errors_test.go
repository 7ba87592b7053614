package derrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("direct code", func(t *testing.T) {
		err := New(CodeNotFound, "gone")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("wrapped code is found through layers", func(t *testing.T) {
		inner := New(CodeInvalidState, "cannot submit")
		outer := Wrap(inner, CodeInternal, "save failed")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeInvalidState))
	})

	t.Run("fmt wrapping is traversed", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeArchived, "profile is archived"))
		assert.True(t, HasCode(err, CodeArchived))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil cause returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("cause remains unwrappable", func(t *testing.T) {
		cause := errors.New("driver: bad connection")
		err := Wrap(cause, CodeInternal, "failed to load profile")
		require.Error(t, err)
		assert.True(t, errors.Is(err, cause))
		assert.Contains(t, err.Error(), "bad connection")
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeConflict, CodeOf(New(CodeConflict, "concurrent update")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("uncoded")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidInput:        http.StatusBadRequest,
		CodeValidation:          http.StatusBadRequest,
		CodeInvalidDocumentType: http.StatusBadRequest,
		CodeInvalidRating:       http.StatusBadRequest,
		CodeNotFound:            http.StatusNotFound,
		CodeConflict:            http.StatusConflict,
		CodeInvalidState:        http.StatusConflict,
		CodeArchived:            http.StatusConflict,
		CodeAlreadyArchived:     http.StatusConflict,
		CodeIncompleteProfile:   http.StatusUnprocessableEntity,
		CodeInvalidLicense:      http.StatusUnprocessableEntity,
		CodeUnauthorized:        http.StatusUnauthorized,
		CodeTimeout:             http.StatusGatewayTimeout,
		CodeInternal:            http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}

	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("mystery")))
}
