package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/pkg/docstore"
	"github.com/shashiranjanraj/stockpile/pkg/orm"
)

// ProductRepository implements ProductStore on the document store.
type ProductRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(docstore.Products), now: time.Now}
}

func (f ProductFilter) toBSON() bson.M {
	filter := bson.M{}
	if f.SupplierID != nil {
		filter["supplierId"] = *f.SupplierID
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.MinQty != nil || f.MaxQty != nil {
		qty := bson.M{}
		if f.MinQty != nil {
			qty["$gte"] = *f.MinQty
		}
		if f.MaxQty != nil {
			qty["$lte"] = *f.MaxQty
		}
		filter["quantity"] = qty
	}
	return filter
}

func (r *ProductRepository) Find(ctx context.Context, f ProductFilter, page, limit int) ([]models.Product, orm.Pagination, error) {
	filter := f.toBSON()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, orm.Pagination{}, fmt.Errorf("count products: %w", err)
	}
	p := orm.NewPagination(total, page, limit)

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Limit))

	products := []models.Product{}
	if err := findAll(ctx, r.col, filter, &products, opts); err != nil {
		return nil, orm.Pagination{}, fmt.Errorf("find products: %w", err)
	}
	return products, p, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, noDocument(err, "find product")
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := r.now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt, p.UpdatedAt = now, now
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = r.now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// FindLowStock returns every product whose quantity is at or below its threshold.
func (r *ProductRepository) FindLowStock(ctx context.Context) ([]models.Product, error) {
	filter := bson.M{"$expr": bson.M{"$lte": bson.A{"$quantity", "$threshold"}}}
	products := []models.Product{}
	if err := findAll(ctx, r.col, filter, &products, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})); err != nil {
		return nil, fmt.Errorf("find low stock: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) CountBySupplier(ctx context.Context) ([]SupplierCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$supplierId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	counts := []SupplierCount{}
	if err := aggregate(ctx, r.col, pipeline, &counts); err != nil {
		return nil, fmt.Errorf("count by supplier: %w", err)
	}
	return counts, nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context) ([]models.Distribution, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "name", Value: "$_id"},
			{Key: "count", Value: 1},
		}}},
	}
	out := []models.Distribution{}
	if err := aggregate(ctx, r.col, pipeline, &out); err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	return out, nil
}

func findAll(ctx context.Context, col *mongo.Collection, filter interface{}, dest interface{}, opts ...*options.FindOptions) error {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	return cur.All(ctx, dest)
}

func aggregate(ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline, dest interface{}) error {
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(ctx, dest)
}

func noDocument(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
