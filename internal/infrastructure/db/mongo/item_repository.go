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

const collectionItems = "items"

type ItemRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{db: db, coll: db.Collection(collectionItems)}
}

type mongoItem struct {
	ID           int64     `bson:"_id"`
	Name         string    `bson:"name"`
	Quantity     int64     `bson:"quantity"`
	Price        float64   `bson:"price"`
	CategoryID   int64     `bson:"category_id"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
	CategoryName string    `bson:"category_name,omitempty"`
}

// List joins every item with its category's display name, ordered by id
// ascending.
func (r *ItemRepository) List(ctx context.Context) ([]domain.ItemWithCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionCategories},
			{Key: "localField", Value: "category_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "category"},
		}}},
		{{Key: "$unwind", Value: "$category"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "category_name", Value: "$category.name"},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "category", Value: 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.ItemWithCategory, 0)
	for cur.Next(ctx) {
		var mi mongoItem
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		out = append(out, domain.ItemWithCategory{Item: mi.toDomain(), CategoryName: mi.CategoryName})
	}
	return out, cur.Err()
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoItem
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	item := mi.toDomain()
	return &item, nil
}

// Create verifies the referenced category and inserts the item in one
// transaction. A category delete serialized after the existence check cannot
// commit, because the delete's own re-count sees this insert.
func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	res, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.categoryExists(sc, item.CategoryID); err != nil {
			return nil, err
		}

		id, err := nextSequence(sc, r.db, seqItems)
		if err != nil {
			return nil, err
		}

		doc := mongoItem{
			ID:         id,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
			CategoryID: item.CategoryID,
			CreatedAt:  item.CreatedAt,
			UpdatedAt:  item.UpdatedAt,
		}
		if _, err := r.coll.InsertOne(sc, doc); err != nil {
			return nil, fmt.Errorf("insert item: %w", err)
		}
		return id, nil
	})
	if err != nil {
		return nil, err
	}

	created := *item
	created.ID = res.(int64)
	return &created, nil
}

// Update rewrites the item's fields under the same category-existence guard
// as Create. The reference is re-checked even when unchanged.
func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	res, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.categoryExists(sc, item.CategoryID); err != nil {
			return nil, err
		}

		var mi mongoItem
		err := r.coll.FindOneAndUpdate(sc,
			bson.M{"_id": item.ID},
			bson.M{"$set": bson.M{
				"name":        item.Name,
				"quantity":    item.Quantity,
				"price":       item.Price,
				"category_id": item.CategoryID,
				"updated_at":  item.UpdatedAt,
			}},
			findOneAndUpdateAfter(),
		).Decode(&mi)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrItemNotFound
			}
			return nil, fmt.Errorf("update item: %w", err)
		}
		return &mi, nil
	})
	if err != nil {
		return nil, err
	}

	updated := res.(*mongoItem).toDomain()
	return &updated, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"category_id": categoryID})
	if err != nil {
		return 0, fmt.Errorf("count items by category: %w", err)
	}
	return n, nil
}

func (mi *mongoItem) toDomain() domain.Item {
	return domain.Item{
		ID:         mi.ID,
		Name:       mi.Name,
		Quantity:   mi.Quantity,
		Price:      mi.Price,
		CategoryID: mi.CategoryID,
		CreatedAt:  mi.CreatedAt.UTC(),
		UpdatedAt:  mi.UpdatedAt.UTC(),
	}
}

func (r *ItemRepository) categoryExists(ctx context.Context, categoryID int64) error {
	n, err := r.db.Collection(collectionCategories).CountDocuments(ctx, bson.M{"_id": categoryID})
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if n == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
