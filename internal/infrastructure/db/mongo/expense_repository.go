package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corpspend/expense-api/internal/core/domain"
	"github.com/corpspend/expense-api/internal/core/ports"
)

const expensesCollection = "expenses"

// ExpenseRepository implements ports.ExpenseRepository backed by MongoDB.
type ExpenseRepository struct {
	coll *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{coll: db.Collection(expensesCollection)}
}

type expenseDoc struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"`
	Title           string              `bson:"title"`
	Amount          float64             `bson:"amount"`
	Category        string              `bson:"category"`
	Date            time.Time           `bson:"date"`
	RequestedBy     primitive.ObjectID  `bson:"requested_by"`
	Status          string              `bson:"status"`
	RejectionReason string              `bson:"rejection_reason"`
	ActionTakenBy   *primitive.ObjectID `bson:"action_taken_by,omitempty"`
}

func (d expenseDoc) toDomain() *domain.Expense {
	e := &domain.Expense{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Amount:          d.Amount,
		Category:        domain.Category(d.Category),
		Date:            d.Date.UTC(),
		RequestedBy:     d.RequestedBy.Hex(),
		Status:          domain.ExpenseStatus(d.Status),
		RejectionReason: d.RejectionReason,
	}
	if d.ActionTakenBy != nil {
		e.ActionTakenBy = d.ActionTakenBy.Hex()
	}
	return e
}

func (r *ExpenseRepository) Insert(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	requester, err := primitive.ObjectIDFromHex(e.RequestedBy)
	if err != nil {
		return nil, fmt.Errorf("insert expense: requester id: %w", err)
	}

	doc := expenseDoc{
		Title:           e.Title,
		Amount:          e.Amount,
		Category:        string(e.Category),
		Date:            e.Date,
		RequestedBy:     requester,
		Status:          string(e.Status),
		RejectionReason: e.RejectionReason,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	created := *e
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id string) (*domain.Expense, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrExpenseNotFound
	}

	var doc expenseDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ExpenseRepository) List(ctx context.Context, filter ports.ListExpensesFilter) ([]*domain.Expense, error) {
	query := bson.M{}
	if filter.RequesterID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.RequesterID)
		if err != nil {
			// A malformed requester id can match nothing.
			return []*domain.Expense{}, nil
		}
		query["requested_by"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer cur.Close(ctx)

	expenses := make([]*domain.Expense, 0)
	for cur.Next(ctx) {
		var doc expenseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		expenses = append(expenses, doc.toDomain())
	}
	return expenses, cur.Err()
}

func (r *ExpenseRepository) UpdateStatus(ctx context.Context, id string, status domain.ExpenseStatus, reason, actorID string) (*domain.Expense, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrExpenseNotFound
	}
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, fmt.Errorf("update expense status: actor id: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"status":           string(status),
		"rejection_reason": reason,
		"action_taken_by":  actor,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc expenseDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("update expense status: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes backing role-scoped listings.
func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "requested_by", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
