package repositories

import (
	"context"
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

// SupplierRepository implements SupplierStore on the document store.
type SupplierRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{col: db.Collection(docstore.Suppliers), now: time.Now}
}

func (r *SupplierRepository) Find(ctx context.Context, page, limit int) ([]models.Supplier, orm.Pagination, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, orm.Pagination{}, fmt.Errorf("count suppliers: %w", err)
	}
	p := orm.NewPagination(total, page, limit)

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Limit))

	suppliers := []models.Supplier{}
	if err := findAll(ctx, r.col, bson.M{}, &suppliers, opts); err != nil {
		return nil, orm.Pagination{}, fmt.Errorf("find suppliers: %w", err)
	}
	return suppliers, p, nil
}

func (r *SupplierRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Supplier, error) {
	var s models.Supplier
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	return s, noDocument(err, "find supplier")
}

// FindByIDs loads every supplier in ids with a single query. Missing ids are
// simply absent from the result.
func (r *SupplierRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	if len(ids) == 0 {
		return suppliers, nil
	}
	if err := findAll(ctx, r.col, bson.M{"_id": bson.M{"$in": ids}}, &suppliers); err != nil {
		return nil, fmt.Errorf("find suppliers by id: %w", err)
	}
	return suppliers, nil
}

func (r *SupplierRepository) Create(ctx context.Context, s *models.Supplier) error {
	now := r.now().UTC()
	s.ID = primitive.NewObjectID()
	s.CreatedAt, s.UpdatedAt = now, now
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepository) Update(ctx context.Context, s *models.Supplier) error {
	s.UpdatedAt = r.now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
