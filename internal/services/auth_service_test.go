package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vijay0896/LoanApp/internal/auth"
	"github.com/vijay0896/LoanApp/internal/models"
	"github.com/vijay0896/LoanApp/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email || existing.Phone == u.Phone {
			return nil, repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpires = expires
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (r *recordingNotifier) Send(_ context.Context, destination, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("provider unavailable")
	}
	r.sent = append(r.sent, destination+": "+body)
	return nil
}

var testSecret = []byte("test-secret")

func newAuthService(repo repository.UserRepository, n *recordingNotifier) *AuthService {
	return NewAuthService(repo, n, testSecret, time.Hour, zap.NewNop().Sugar())
}

func TestRegister_HashesPasswordAndIssuesToken(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newAuthService(repo, &recordingNotifier{})

	res, err := svc.Register(context.Background(), "amit", "a@x.com", "9876543210", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if res.Token == "" || res.UserID == "" {
		t.Fatalf("empty token or user id: %+v", res)
	}

	claims, err := auth.ParseToken(res.Token, testSecret)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != res.UserID {
		t.Errorf("token user id %q != %q", claims.UserID, res.UserID)
	}

	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if stored.Password == "secret1" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newAuthService(repo, &recordingNotifier{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "amit", "a@x.com", "9876543210", "secret1"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	_, err := svc.Register(ctx, "amit2", "a@x.com", "9876543211", "secret2")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("got %v, want ErrDuplicateUser", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate registration created a second record")
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newAuthService(repo, &recordingNotifier{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "amit", "a@x.com", "9876543210", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	res, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("empty token")
	}

	// unknown email and wrong password fail identically
	_, badEmail := svc.Login(ctx, "nobody@x.com", "secret1")
	_, badPass := svc.Login(ctx, "a@x.com", "wrong")
	if !errors.Is(badEmail, ErrInvalidCredentials) || !errors.Is(badPass, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials for both, got %v / %v", badEmail, badPass)
	}
}

func TestRequestPasswordReset_KnownEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	n := &recordingNotifier{}
	svc := newAuthService(repo, n)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "amit", "a@x.com", "9876543210", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
		t.Fatalf("RequestPasswordReset error: %v", err)
	}

	stored, _ := repo.FindByEmail(ctx, "a@x.com")
	if len(stored.ResetToken) != resetCodeLength {
		t.Fatalf("reset code %q, want %d chars", stored.ResetToken, resetCodeLength)
	}
	until := time.Until(stored.ResetTokenExpires)
	if until < 55*time.Minute || until > 65*time.Minute {
		t.Fatalf("reset expiry %v away, want about 1h", until)
	}
	if len(n.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(n.sent))
	}
}

func TestRequestPasswordReset_UnknownEmailStillSucceeds(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	svc := newAuthService(newFakeUserRepo(), n)

	if err := svc.RequestPasswordReset(context.Background(), "ghost@x.com"); err != nil {
		t.Fatalf("unknown email must not error, got %v", err)
	}
	if len(n.sent) != 0 {
		t.Fatalf("no notification expected for unknown email")
	}
}

func TestRequestPasswordReset_NotifierFailureSwallowed(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newAuthService(repo, &recordingNotifier{fail: true})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "amit", "a@x.com", "9876543210", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
		t.Fatalf("notifier failure must not propagate, got %v", err)
	}
	// the code was still stored
	stored, _ := repo.FindByEmail(ctx, "a@x.com")
	if stored.ResetToken == "" {
		t.Fatalf("reset code not stored")
	}
}

func TestGenerateResetCode(t *testing.T) {
	t.Parallel()

	code, err := generateResetCode(resetCodeLength)
	if err != nil {
		t.Fatalf("generateResetCode error: %v", err)
	}
	if len(code) != resetCodeLength {
		t.Fatalf("code length %d, want %d", len(code), resetCodeLength)
	}
	for _, ch := range code {
		if !((ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'Z')) {
			t.Fatalf("unexpected character %q in code %q", ch, code)
		}
	}
}
