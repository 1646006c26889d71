package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for v, want := range map[int]Status{
		0: StatusPending,
		1: StatusConfirmed,
		2: StatusProcessing,
		3: StatusShipped,
		4: StatusDelivered,
		5: StatusCancelled,
	} {
		s, err := ParseStatus(v)
		require.NoError(t, err)
		assert.Equal(t, want, s)
	}
}

func TestParseStatus_OutOfRange(t *testing.T) {
	for _, v := range []int{-1, 6, 42} {
		_, err := ParseStatus(v)
		assert.ErrorIs(t, err, ErrInvalidStatus, "value %d", v)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Pending", StatusPending.String())
	assert.Equal(t, "Cancelled", StatusCancelled.String())
	assert.Equal(t, "Unknown", Status(9).String())
}
