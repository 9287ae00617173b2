package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumina-market/storefront/internal/core/domain"
)

const collectionProducts = "products"

// productDoc stores a product with its catalog position. Lower positions
// are shown first; inserts take min(position)-1 so new products lead.
type productDoc struct {
	domain.Product `bson:",inline"`
	Position       int64 `bson:"position"`
}

// ProductRepository implements ports.ProductRepository on MongoDB.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

// List returns the catalog ordered by position.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]domain.Product, len(docs))
	for i, d := range docs {
		out[i] = normalize(d.Product)
	}
	return out, nil
}

// Get retrieves a product by id.
func (r *ProductRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d productDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	p := normalize(d.Product)
	return &p, nil
}

// Insert places p ahead of every existing product.
func (r *ProductRepository) Insert(ctx context.Context, p domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pos, err := r.frontPosition(ctx)
	if err != nil {
		return err
	}

	if _, err := r.col.InsertOne(ctx, productDoc{Product: p, Position: pos}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateProduct
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Replace overwrites every product field but keeps the position.
func (r *ProductRepository) Replace(ctx context.Context, p domain.Product) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"price":       p.Price,
		"category":    p.Category,
		"image":       p.Image,
		"description": p.Description,
		"tags":        p.Tags,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return false, fmt.Errorf("replace product: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Delete removes a product by id.
func (r *ProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Seed loads products into an empty collection, keeping their order.
// A collection that already holds documents is left untouched.
func (r *ProductRepository) Seed(ctx context.Context, products []domain.Product) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 || len(products) == 0 {
		return 0, nil
	}

	docs := make([]any, len(products))
	for i, p := range products {
		docs[i] = productDoc{Product: p, Position: int64(i)}
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	return len(docs), nil
}

// EnsureIndexes creates the ordering index on the products collection.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "position", Value: 1}}})
	return err
}

func (r *ProductRepository) frontPosition(ctx context.Context) (int64, error) {
	var first productDoc
	err := r.col.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "position", Value: 1}})).Decode(&first)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find front position: %w", err)
	}
	return first.Position - 1, nil
}

func normalize(p domain.Product) domain.Product {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}
