package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vijay0896/LoanApp/internal/models"
)

// BorrowerFields is the subset of borrower profile fields a PATCH may change.
// Values are expected pre-normalized by the caller.
type BorrowerFields struct {
	Name    string
	Mobile  string
	Address string
}

// LoanFields carries parsed loan values for an embedded-loan update.
type LoanFields struct {
	Amount       float64
	Date         time.Time
	InterestRate float64
}

type BorrowerRepository interface {
	FindByIdentity(ctx context.Context, userID primitive.ObjectID, name, mobile string) (*models.Borrower, error)
	Insert(ctx context.Context, b *models.Borrower) (*models.Borrower, error)
	AppendLoan(ctx context.Context, userID, borrowerID primitive.ObjectID, loan models.Loan, imageKey string) error
	ListByOwner(ctx context.Context, userID primitive.ObjectID) ([]*models.Borrower, error)
	Delete(ctx context.Context, userID, borrowerID primitive.ObjectID) error
	PullLoan(ctx context.Context, userID, borrowerID, loanID primitive.ObjectID) error
	UpdateProfile(ctx context.Context, userID, borrowerID primitive.ObjectID, fields BorrowerFields) error
	UpdateLoan(ctx context.Context, userID, borrowerID, loanID primitive.ObjectID, fields LoanFields) error
}

type borrowerRepository struct {
	coll *mongo.Collection
}

func NewBorrowerRepository(coll *mongo.Collection) BorrowerRepository {
	// One borrower document per (owner, normalized identity). Concurrent
	// submissions that both miss the match hit this index instead of
	// creating a second document.
	ix := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "borrower_name", Value: 1},
			{Key: "borrower_mobile", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_owner_identity"),
	}
	_, _ = coll.Indexes().CreateOne(context.Background(), ix)
	return &borrowerRepository{coll: coll}
}

func (r *borrowerRepository) FindByIdentity(ctx context.Context, userID primitive.ObjectID, name, mobile string) (*models.Borrower, error) {
	filter := bson.M{
		"user_id":         userID,
		"borrower_name":   name,
		"borrower_mobile": mobile,
	}
	var b models.Borrower
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *borrowerRepository) Insert(ctx context.Context, b *models.Borrower) (*models.Borrower, error) {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return b, nil
}

func (r *borrowerRepository) AppendLoan(ctx context.Context, userID, borrowerID primitive.ObjectID, loan models.Loan, imageKey string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if imageKey != "" {
		// last write wins, no history kept
		set["image_key"] = imageKey
	}
	update := bson.M{
		"$push": bson.M{"loans": loan},
		"$set":  set,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": borrowerID, "user_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *borrowerRepository) ListByOwner(ctx context.Context, userID primitive.ObjectID) ([]*models.Borrower, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Borrower{}
	for cur.Next(ctx) {
		var b models.Borrower
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, cur.Err()
}

func (r *borrowerRepository) Delete(ctx context.Context, userID, borrowerID primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": borrowerID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *borrowerRepository) PullLoan(ctx context.Context, userID, borrowerID, loanID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"loans": bson.M{"_id": loanID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": borrowerID, "user_id": userID}, update)
	if err != nil {
		return err
	}
	// ModifiedCount stays 0 when no embedded loan matched the pull
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *borrowerRepository) UpdateProfile(ctx context.Context, userID, borrowerID primitive.ObjectID, fields BorrowerFields) error {
	set := bson.M{}
	if fields.Name != "" {
		set["borrower_name"] = fields.Name
	}
	if fields.Mobile != "" {
		set["borrower_mobile"] = fields.Mobile
	}
	if fields.Address != "" {
		set["borrower_address"] = fields.Address
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": borrowerID, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	// A no-op update (fields already equal) also reports not found. Kept
	// that way deliberately; callers cannot tell the two apart.
	if res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *borrowerRepository) UpdateLoan(ctx context.Context, userID, borrowerID, loanID primitive.ObjectID, fields LoanFields) error {
	filter := bson.M{
		"_id":       borrowerID,
		"user_id":   userID,
		"loans._id": loanID,
	}
	update := bson.M{"$set": bson.M{
		"loans.$.loan_amount":   fields.Amount,
		"loans.$.loan_date":     fields.Date,
		"loans.$.interest_rate": fields.InterestRate,
		"updated_at":            time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
