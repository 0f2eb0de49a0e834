package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_KeepsInnerCode(t *testing.T) {
	inner := CoercionFailed("Employment", 3, "abc", stderrors.New("bad digit"))
	wrapped := Wrap(inner, "failed to load OccupationStats.csv")

	assert.Equal(t, CodeCoercionFailed, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "failed to load OccupationStats.csv")
	assert.Contains(t, wrapped.Error(), `column "Employment" row 3`)
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "context")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestGetCode_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("task"))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestHasCode(t *testing.T) {
	err := Wrap(New(CodeDatasetLoad, "missing column"), "startup")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeDatasetLoad))
	assert.False(t, HasCode(err, CodeNotFound))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidInput("unknown input"), http.StatusBadRequest},
		{NotFound("chart"), http.StatusNotFound},
		{Wrap(NotFound("task"), "lookup"), http.StatusNotFound},
		{InternalError("oops"), http.StatusInternalServerError},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, stderrors.New("bad page"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Contains(t, err.Error(), "bad page")
}
