//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"sparkwash-api/internal/pkg/errs"

	cr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("slot unavailable")
	cause := errs.New("no free bay at 09:00")

	t.Run("mark matches under stdlib errors.Is", func(t *testing.T) {
		marked := errs.Mark(cause, sentinel)
		assert.ErrorIs(t, marked, sentinel)
		assert.ErrorIs(t, marked, cause)
		assert.True(t, cr.Is(marked, sentinel))
	})

	t.Run("mark does not leak into the message", func(t *testing.T) {
		marked := errs.Mark(cause, sentinel)
		assert.Equal(t, cause.Error(), marked.Error())
	})

	t.Run("mark survives further wrapping", func(t *testing.T) {
		wrapped := errs.Wrap(errs.Mark(cause, sentinel), "verify reference")
		assert.ErrorIs(t, wrapped, sentinel)
		assert.ErrorIs(t, wrapped, cause)
	})

	t.Run("nil cause yields the mark itself", func(t *testing.T) {
		assert.Same(t, sentinel, errs.Mark(nil, sentinel))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, errs.Wrap(nil, "ignored"))
	})

	t.Run("wrapped cause matches under errors.Is", func(t *testing.T) {
		cause := errs.New("connection refused")
		assert.True(t, errors.Is(errs.Wrap(cause, "dial gateway"), cause))
	})
}
