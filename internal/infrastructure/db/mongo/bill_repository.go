package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/billtrack/billing-system/internal/core/domain"
	"github.com/billtrack/billing-system/internal/core/ports"
)

const billCollection = "bills"

type BillRepository struct {
	coll *mongo.Collection
}

func NewBillRepository(db *mongo.Database) *BillRepository {
	return &BillRepository{coll: db.Collection(billCollection)}
}

type mongoBill struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	BillingHolder string             `bson:"billing_holder"`
	Phone         string             `bson:"phone"`
	Amount        float64            `bson:"amount"`
	Status        string             `bson:"status"`
	Dateline      time.Time          `bson:"dateline"`
	BillAttacher  string             `bson:"bill_attacher,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (mb *mongoBill) toDomain() *domain.Bill {
	return &domain.Bill{
		ID:            mb.ID.Hex(),
		BillingHolder: mb.BillingHolder,
		Phone:         mb.Phone,
		Amount:        mb.Amount,
		Status:        mb.Status,
		Dateline:      mb.Dateline,
		BillAttacher:  mb.BillAttacher,
		CreatedAt:     mb.CreatedAt,
		UpdatedAt:     mb.UpdatedAt,
	}
}

func fromDomainBill(b *domain.Bill) mongoBill {
	return mongoBill{
		BillingHolder: b.BillingHolder,
		Phone:         b.Phone,
		Amount:        b.Amount,
		Status:        b.Status,
		Dateline:      b.Dateline,
		BillAttacher:  b.BillAttacher,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (r *BillRepository) Create(ctx context.Context, bill *domain.Bill) (*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, fromDomainBill(bill))
	if err != nil {
		return nil, fmt.Errorf("insert bill: %w", err)
	}

	created := *bill
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BillRepository) FindByID(ctx context.Context, id string) (*domain.Bill, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBillNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBill
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("find bill: %w", err)
	}
	return mb.toDomain(), nil
}

// List returns the filtered page of bills and the total match count.
// A zero filter.Limit disables pagination (used for the summary totals).
func (r *BillRepository) List(ctx context.Context, filter ports.BillFilter) ([]*domain.Bill, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"billing_holder": pattern},
			bson.M{"phone": pattern},
			bson.M{"status": pattern},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count bills: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetSkip(int64((filter.Page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list bills: %w", err)
	}
	defer cur.Close(ctx)

	var bills []*domain.Bill
	for cur.Next(ctx) {
		var mb mongoBill
		if err := cur.Decode(&mb); err != nil {
			return nil, 0, fmt.Errorf("decode bill: %w", err)
		}
		bills = append(bills, mb.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bills: %w", err)
	}
	return bills, total, nil
}

func (r *BillRepository) Update(ctx context.Context, bill *domain.Bill) (*domain.Bill, error) {
	oid, err := primitive.ObjectIDFromHex(bill.ID)
	if err != nil {
		return nil, domain.ErrBillNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"billing_holder": bill.BillingHolder,
		"phone":          bill.Phone,
		"amount":         bill.Amount,
		"status":         bill.Status,
		"dateline":       bill.Dateline,
		"updated_at":     bill.UpdatedAt,
	}})
	if err != nil {
		return nil, fmt.Errorf("update bill: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBillNotFound
	}
	return bill, nil
}

func (r *BillRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBillNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the list filters rely on.
func (r *BillRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure bill indexes: %w", err)
	}
	return nil
}
