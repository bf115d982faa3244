package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
)

const collectionCategories = "categories"

type CategoryRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{db: db, coll: db.Collection(collectionCategories)}
}

type mongoCategory struct {
	ID        int64     `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
	ItemCount int64     `bson:"item_count,omitempty"`
}

// List aggregates categories with the live count of referencing items,
// ordered by id ascending. The count is computed per read.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.CategoryWithCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionItems},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "category_id"},
			{Key: "as", Value: "items"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "item_count", Value: bson.D{{Key: "$size", Value: "$items"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "items", Value: 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.CategoryWithCount, 0)
	for cur.Next(ctx) {
		var mc mongoCategory
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		out = append(out, domain.CategoryWithCount{Category: mc.toDomain(), ItemCount: mc.ItemCount})
	}
	return out, cur.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCategory
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	c := mc.toDomain()
	return &c, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("category exists: %w", err)
	}
	return n > 0, nil
}

func (r *CategoryRepository) Create(ctx context.Context, name string, now time.Time) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, seqCategories)
	if err != nil {
		return nil, err
	}

	doc := mongoCategory{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	c := doc.toDomain()
	return &c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id int64, name string, now time.Time) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCategory
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "updated_at": now}},
		findOneAndUpdateAfter(),
	).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	c := mc.toDomain()
	return &c, nil
}

// DeleteIfUnreferenced re-counts referencing items and deletes the category
// inside a single transaction, so the check and the delete commit together.
// A concurrent item create referencing the same category either lands before
// the count (blocking the delete) or serializes after it (and fails its own
// category-existence check).
func (r *CategoryRepository) DeleteIfUnreferenced(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		n, err := r.db.Collection(collectionItems).CountDocuments(sc, bson.M{"category_id": id})
		if err != nil {
			return nil, fmt.Errorf("count items for category: %w", err)
		}
		if n > 0 {
			return nil, domain.ErrCategoryInUse
		}

		res, err := r.coll.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, fmt.Errorf("delete category: %w", err)
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, nil
	})
	return err
}

func (mc *mongoCategory) toDomain() domain.Category {
	return domain.Category{
		ID:        mc.ID,
		Name:      mc.Name,
		CreatedAt: mc.CreatedAt.UTC(),
		UpdatedAt: mc.UpdatedAt.UTC(),
	}
}
