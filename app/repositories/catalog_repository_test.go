package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/shashiranjanraj/stockpile/app/models"
)

func intp(n int) *int { return &n }

func TestProductFilterToBSON(t *testing.T) {
	supplier := primitive.NewObjectID()

	assert.Equal(t, bson.M{}, ProductFilter{}.toBSON())
	assert.Equal(t, bson.M{
		"supplierId": supplier,
		"category":   "Tools",
		"quantity":   bson.M{"$gte": 0, "$lte": 10},
	}, ProductFilter{SupplierID: &supplier, Category: "Tools", MinQty: intp(0), MaxQty: intp(10)}.toBSON())
}

func TestProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "stockpile.products"

	mt.Run("find by id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Hammer"},
			{Key: "quantity", Value: 3},
			{Key: "threshold", Value: 5},
			{Key: "price", Value: 9.5},
		}))

		p, err := NewProductRepository(mt.DB).FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Hammer", p.Name)
		assert.True(t, p.LowStock())
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewProductRepository(mt.DB).FindByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("paginated find", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: 12}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "A"}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "B"}},
			),
		)

		products, p, err := NewProductRepository(mt.DB).Find(context.Background(), ProductFilter{Category: "Tools"}, 2, 10)
		require.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Equal(t, int64(12), p.Total)
		assert.Equal(t, 2, p.Pages)
	})

	mt.Run("count by category", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Tools"}, {Key: "count", Value: int32(3)}},
			bson.D{{Key: "name", Value: "Paint"}, {Key: "count", Value: int32(1)}},
		))

		dist, err := NewProductRepository(mt.DB).CountByCategory(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []models.Distribution{{Name: "Tools", Count: 3}, {Name: "Paint", Count: 1}}, dist)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		err := NewProductRepository(mt.DB).Delete(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Product{Name: "Saw", Quantity: 4, Threshold: 2}
		require.NoError(t, NewProductRepository(mt.DB).Create(context.Background(), p))
		assert.False(t, p.ID.IsZero())
		assert.False(t, p.CreatedAt.IsZero())
	})
}

func TestSupplierFindByIDsSkipsEmpty(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no ids no query", func(mt *mtest.T) {
		got, err := NewSupplierRepository(mt.DB).FindByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
