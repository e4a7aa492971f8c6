package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VatsalRaj481/Arise/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (int, error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeProductEventV1(t *testing.T) {
	const subject = "product-events-value"

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeProductEventV1(t.Context())
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.Error(t, err)
	})

	t.Run("RegistryFailure", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		errRegistry := errors.New("registry is down")
		si.On("DetermineID", t.Context(), subject, schema.ProductEventSchemaTextV1).
			Return(0, errRegistry).Once()

		_, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		assert.ErrorIs(t, err, errRegistry)
		si.AssertExpectations(t)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On("DetermineID", t.Context(), subject, schema.ProductEventSchemaTextV1).
			Return(3, nil).Once()

		serde, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		require.NoError(t, err)

		in := schema.ProductEventV1{
			Type:        "created",
			ProductID:   42,
			Name:        "Laptop",
			Description: "14 inch",
			Price:       "1200.50",
			ImageURL:    "http://img/laptop.png",
			OccurredAt:  time.UnixMilli(1_760_000_000_000).UTC(),
		}

		data, err := serde.Encode(in)
		require.NoError(t, err)
		// magic byte followed by the big-endian schema id
		require.Greater(t, len(data), 5)
		assert.Equal(t, []byte{0, 0, 0, 0, 3}, data[:5])

		var out schema.ProductEventV1
		require.NoError(t, serde.Decode(data, &out))

		assert.Equal(t, in.Type, out.Type)
		assert.Equal(t, in.ProductID, out.ProductID)
		assert.Equal(t, in.Name, out.Name)
		assert.Equal(t, in.Description, out.Description)
		assert.Equal(t, in.Price, out.Price)
		assert.Equal(t, in.ImageURL, out.ImageURL)
		assert.True(t, in.OccurredAt.Equal(out.OccurredAt))
		si.AssertExpectations(t)
	})
}
