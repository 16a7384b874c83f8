package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loan is a single borrowing event. It has no lifecycle outside its Borrower.
type Loan struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	LoanAmount   float64            `bson:"loan_amount" json:"loanAmount"`
	LoanDate     time.Time          `bson:"loan_date" json:"loanDate"`
	InterestRate float64            `bson:"interest_rate" json:"interestRate"`
}

// Borrower holds one lender's record of a person and the loans extended to
// them. Name and mobile are stored normalized (see services.NormalizeName);
// presentation formatting happens at read time only.
type Borrower struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BorrowerName    string             `bson:"borrower_name" json:"borrowerName"`
	BorrowerMobile  string             `bson:"borrower_mobile" json:"borrowerMobile"`
	BorrowerAddress string             `bson:"borrower_address" json:"borrowerAddress"`
	Loans           []Loan             `bson:"loans" json:"loans"`
	ImageKey        string             `bson:"image_key,omitempty" json:"-"`
	ImageURL        string             `bson:"-" json:"imageUrl,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
