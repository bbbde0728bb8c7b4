package snapshots

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNotFound(t *testing.T) {
	err := notFound("abc", status.Error(codes.NotFound, "no such document"))
	assert.ErrorIs(t, err, ErrNotFound)

	err = notFound("abc", status.Error(codes.Unavailable, "try later"))
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, codes.Unavailable, status.Code(errors.Unwrap(err)))
}

func TestNewIDIsOrdered(t *testing.T) {
	first := NewID()
	second := NewID()

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first[:8], second[:8])
}
