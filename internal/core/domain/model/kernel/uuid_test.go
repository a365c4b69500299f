package kernel_test

import (
	"testing"

	"hyperlocal/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleID = "8f14e45f-ceea-467f-a8cb-9b1d8f5be1c2"

func TestNewUUID(t *testing.T) {
	t.Run("generated identifier is valid", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.NoError(t, id.Validate())
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	})

	t.Run("two orders never share an identifier", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		assert.False(t, a.IsEqual(b))
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("accepted forms", func(t *testing.T) {
		// route parameters arrive canonical, but uuid.Parse is lenient
		for _, input := range []string{
			sampleID,
			"{" + sampleID + "}",
			"urn:uuid:" + sampleID,
			"8f14e45fceea467fa8cb9b1d8f5be1c2",
		} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, input)
			assert.Equal(t, sampleID, id.String())
			assert.NoError(t, id.Validate())
		}
	})

	t.Run("rejected forms", func(t *testing.T) {
		for _, input := range []string{
			"",
			"order-42",
			sampleID[:18],
			sampleID + "-trailer",
			"zz14e45f-ceea-467f-a8cb-9b1d8f5be1c2",
		} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round-trips the stored binary form", func(t *testing.T) {
		stored := kernel.NewUUID()
		raw := stored.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, stored.IsEqual(restored))
	})

	t.Run("rejects a truncated value", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x8f, 0x14, 0xe4})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("rejects the nil identifier", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDBytes(t *testing.T) {
	id, err := kernel.UUIDFromString(sampleID)
	require.NoError(t, err)

	underlying := id.Bytes()

	assert.IsType(t, uuid.UUID{}, underlying)
	assert.Equal(t, sampleID, underlying.String())
}

func TestUUIDIsEqual(t *testing.T) {
	t.Run("same value parsed twice", func(t *testing.T) {
		a, err := kernel.UUIDFromString(sampleID)
		require.NoError(t, err)
		b, err := kernel.UUIDFromString(sampleID)
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
		assert.True(t, b.IsEqual(a))
	})

	t.Run("distinct values", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		assert.False(t, a.IsEqual(b))
	})

	t.Run("zero values are equal to each other only", func(t *testing.T) {
		var a, b kernel.UUID

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(kernel.NewUUID()))
	})
}

func TestUUIDValidate(t *testing.T) {
	t.Run("constructed identifier passes", func(t *testing.T) {
		assert.NoError(t, kernel.NewUUID().Validate())
	})

	t.Run("zero value fails", func(t *testing.T) {
		var id kernel.UUID

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})

	t.Run("parsed nil identifier fails", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUIDUninitializedField(t *testing.T) {
	// an aggregate loaded without going through a constructor must not
	// validate
	var row struct {
		OrderID kernel.UUID
	}

	assert.Error(t, row.OrderID.Validate())
}
