package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vijay0896/LoanApp/internal/models"
	"github.com/vijay0896/LoanApp/internal/notify"
	"github.com/vijay0896/LoanApp/internal/repository"
	"github.com/vijay0896/LoanApp/internal/storage"
)

// BorrowerInput is the raw identity as submitted; normalization happens here,
// not in the handler and not in the repository.
type BorrowerInput struct {
	Name    string `json:"borrowerName" form:"borrowerName"`
	Mobile  string `json:"borrowerMobile" form:"borrowerMobile"`
	Address string `json:"borrowerAddress" form:"borrowerAddress"`
}

// LoanInput keeps amount and rate as strings: clients send them straight from
// form fields and the numeric check is part of the contract.
type LoanInput struct {
	LoanAmount   string `json:"loanAmount"`
	InterestRate string `json:"interestRate"`
	LoanDate     string `json:"loanDate"`
}

const notifyTimeout = 5 * time.Second

type LoanService struct {
	borrowers  repository.BorrowerRepository
	store      storage.ObjectStore
	notifier   notify.Notifier
	presignTTL time.Duration
	log        *zap.SugaredLogger
}

func NewLoanService(borrowers repository.BorrowerRepository, store storage.ObjectStore, notifier notify.Notifier, presignTTL time.Duration, log *zap.SugaredLogger) *LoanService {
	return &LoanService{borrowers: borrowers, store: store, notifier: notifier, presignTTL: presignTTL, log: log}
}

// SubmitEntry records one loan against the borrower identified by the
// submitted name+mobile, creating the borrower document on first contact.
// Identity matching is strict equality after normalization; the unique index
// on (owner, name, mobile) closes the find-then-insert race, so a losing
// insert falls back to append.
func (s *LoanService) SubmitEntry(ctx context.Context, ownerID string, in BorrowerInput, loans []LoanInput, imageKey string) (string, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return "", ErrNotFound
	}
	if len(loans) == 0 {
		return "", ErrInvalidLoanPayload
	}
	loan, err := parseLoan(loans[0])
	if err != nil {
		return "", err
	}

	name := NormalizeName(in.Name)
	mobile := NormalizeMobile(in.Mobile)
	if name == "" || mobile == "" {
		return "", &ValidationError{Fields: map[string]string{"borrowerName": "Borrower name and mobile are required"}}
	}

	borrower, err := s.borrowers.FindByIdentity(ctx, owner, name, mobile)
	switch {
	case err == nil:
		if err := s.borrowers.AppendLoan(ctx, owner, borrower.ID, loan, imageKey); err != nil {
			return "", err
		}
	case errors.Is(err, repository.ErrNotFound):
		created := &models.Borrower{
			BorrowerName:    name,
			BorrowerMobile:  mobile,
			BorrowerAddress: NormalizeAddress(in.Address),
			Loans:           []models.Loan{loan},
			ImageKey:        imageKey,
			UserID:          owner,
		}
		borrower, err = s.borrowers.Insert(ctx, created)
		if errors.Is(err, repository.ErrDuplicate) {
			// lost the race, another submission created it first
			borrower, err = s.borrowers.FindByIdentity(ctx, owner, name, mobile)
			if err != nil {
				return "", err
			}
			if err := s.borrowers.AppendLoan(ctx, owner, borrower.ID, loan, imageKey); err != nil {
				return "", err
			}
		} else if err != nil {
			return "", err
		}
	default:
		return "", err
	}

	s.notifyBorrower(mobile, loan)
	return borrower.ID.Hex(), nil
}

// notifyBorrower is fire-and-forget: it runs off the request context and any
// failure ends up in the log, never in the response.
func (s *LoanService) notifyBorrower(mobile string, loan models.Loan) {
	body := fmt.Sprintf("A loan of %.2f at %.2f%% interest was recorded against your number on %s.",
		loan.LoanAmount, loan.InterestRate, loan.LoanDate.Format("02 Jan 2006"))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Send(ctx, mobile, body); err != nil {
			s.log.Errorw("loan notification failed", "mobile", mobile, "err", err)
		}
	}()
}

// ListBorrowers returns the caller's borrowers with read-time presentation:
// title-cased name/address and the image key resolved to a fetchable URL.
func (s *LoanService) ListBorrowers(ctx context.Context, ownerID string) ([]*models.Borrower, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}
	borrowers, err := s.borrowers.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(borrowers) == 0 {
		return nil, ErrNotFound
	}
	for _, b := range borrowers {
		b.BorrowerName = TitleCase(b.BorrowerName)
		b.BorrowerAddress = TitleCase(b.BorrowerAddress)
		if b.ImageKey != "" {
			url, uerr := s.store.ResolveURL(ctx, b.ImageKey, s.presignTTL)
			if uerr != nil {
				s.log.Warnw("image url resolve failed", "borrower", b.ID.Hex(), "err", uerr)
				continue
			}
			b.ImageURL = url
		}
	}
	return borrowers, nil
}

func (s *LoanService) DeleteBorrower(ctx context.Context, ownerID, borrowerID string) error {
	owner, bid, err := parseScope(ownerID, borrowerID)
	if err != nil {
		return err
	}
	return mapRepoErr(s.borrowers.Delete(ctx, owner, bid))
}

func (s *LoanService) DeleteLoan(ctx context.Context, ownerID, borrowerID, loanID string) error {
	owner, bid, err := parseScope(ownerID, borrowerID)
	if err != nil {
		return err
	}
	lid, err := primitive.ObjectIDFromHex(loanID)
	if err != nil {
		return ErrNotFound
	}
	return mapRepoErr(s.borrowers.PullLoan(ctx, owner, bid, lid))
}

func (s *LoanService) UpdateBorrower(ctx context.Context, ownerID, borrowerID string, in BorrowerInput) error {
	owner, bid, err := parseScope(ownerID, borrowerID)
	if err != nil {
		return err
	}
	fields := repository.BorrowerFields{
		Name:    NormalizeName(in.Name),
		Mobile:  NormalizeMobile(in.Mobile),
		Address: NormalizeAddress(in.Address),
	}
	if fields.Name == "" && fields.Mobile == "" && fields.Address == "" {
		return &ValidationError{Fields: map[string]string{"fields": "Nothing to update"}}
	}
	return mapRepoErr(s.borrowers.UpdateProfile(ctx, owner, bid, fields))
}

func (s *LoanService) UpdateLoan(ctx context.Context, ownerID, borrowerID, loanID string, in LoanInput) error {
	owner, bid, err := parseScope(ownerID, borrowerID)
	if err != nil {
		return err
	}
	lid, err := primitive.ObjectIDFromHex(loanID)
	if err != nil {
		return ErrNotFound
	}
	loan, err := parseLoan(in)
	if err != nil {
		return err
	}
	fields := repository.LoanFields{
		Amount:       loan.LoanAmount,
		Date:         loan.LoanDate,
		InterestRate: loan.InterestRate,
	}
	return mapRepoErr(s.borrowers.UpdateLoan(ctx, owner, bid, lid, fields))
}

func parseScope(ownerID, borrowerID string) (primitive.ObjectID, primitive.ObjectID, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrNotFound
	}
	bid, err := primitive.ObjectIDFromHex(borrowerID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrNotFound
	}
	return owner, bid, nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func parseLoan(in LoanInput) (models.Loan, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(in.LoanAmount), 64)
	if err != nil {
		return models.Loan{}, ErrInvalidNumericField
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(in.InterestRate), 64)
	if err != nil {
		return models.Loan{}, ErrInvalidNumericField
	}
	if amount <= 0 || rate < 0 {
		return models.Loan{}, ErrInvalidNumericField
	}
	date, err := parseLoanDate(in.LoanDate)
	if err != nil {
		return models.Loan{}, ErrInvalidLoanPayload
	}
	return models.Loan{
		ID:           primitive.NewObjectID(),
		LoanAmount:   amount,
		LoanDate:     date,
		InterestRate: rate,
	}, nil
}

func parseLoanDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized loan date %q", s)
}
