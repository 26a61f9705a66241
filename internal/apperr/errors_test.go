package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf_WalksWrapChain(t *testing.T) {
	inner := NotFound("draft not found")
	wrapped := fmt.Errorf("loading draft: %w", inner)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindConflict))
}

func TestKindOf_UnclassifiedError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
}

func TestFromPG_UniqueViolationBecomesConflict(t *testing.T) {
	pgErr := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}

	err := FromPG(pgErr, "subscription already exists")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.ErrorIs(t, err, pgErr)
}

func TestFromPG_OtherErrorsPassThrough(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Equal(t, plain, FromPG(plain, "unused"))

	pgErr := &pq.Error{Code: "23503"} // foreign key violation
	assert.Equal(t, KindUnknown, KindOf(FromPG(pgErr, "unused")))
}

func TestFromPG_Nil(t *testing.T) {
	assert.NoError(t, FromPG(nil, "unused"))
}

func TestIsContention(t *testing.T) {
	assert.True(t, IsContention(&pq.Error{Code: "40001"}))
	assert.True(t, IsContention(&pq.Error{Code: "40P01"}))
	assert.True(t, IsContention(fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})))
	assert.False(t, IsContention(&pq.Error{Code: "23505"}))
	assert.False(t, IsContention(errors.New("boom")))
}

func TestError_Message(t *testing.T) {
	bare := New(KindForbidden, "not enough permissions")
	assert.Equal(t, "not enough permissions", bare.Error())

	wrapped := Wrap(KindTransientUpstream, "request failed", errors.New("dial tcp: refused"))
	assert.Equal(t, "request failed: dial tcp: refused", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "dial tcp: refused")
}
