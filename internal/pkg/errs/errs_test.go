//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"guildhall/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limitError struct {
	limit int
}

func (e *limitError) Error() string { return "limit reached" }

func TestMark(t *testing.T) {
	sentinel := errs.New("quota exceeded")

	t.Run("errors.Is finds the sentinel", func(t *testing.T) {
		err := errs.Mark(&limitError{limit: 2}, sentinel)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("errors.As still reaches the cause", func(t *testing.T) {
		err := errs.Mark(&limitError{limit: 2}, sentinel)

		var cause *limitError
		require.ErrorAs(t, err, &cause)
		assert.Equal(t, 2, cause.limit)
	})

	t.Run("the cause chain survives marking", func(t *testing.T) {
		inner := errs.New("no rows")
		err := errs.Mark(errs.Wrap(inner, "load booking"), sentinel)

		assert.ErrorIs(t, err, inner)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("message stays the cause's message", func(t *testing.T) {
		err := errs.Mark(&limitError{}, sentinel)
		assert.Equal(t, "limit reached", err.Error())
	})

	t.Run("nil cause yields the sentinel itself", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)
		assert.True(t, errors.Is(err, sentinel))
	})
}
