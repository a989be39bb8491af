package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("disk on fire")
	got := FromError(cause)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.ErrorIs(t, got, cause)
}

func TestFromErrorKeepsTyped(t *testing.T) {
	nf := Clone(ErrNotFound, "student not found")
	got := FromError(fmt.Errorf("get: %w", nf))
	assert.Same(t, nf, got)
	assert.Nil(t, FromError(nil))
}

func TestIsMatchesClones(t *testing.T) {
	err := WithCause(ErrDuplicate, "", errors.New("unique"), nil)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "record already exists: unique", err.Error())
	// the shared sentinel is untouched
	assert.Nil(t, ErrDuplicate.Err)
}
