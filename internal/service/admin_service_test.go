package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/rs/zerolog"
)

type fakeAdminStore struct {
	admins map[string]*model.Admin
	nextID int
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: make(map[string]*model.Admin)}
}

func (f *fakeAdminStore) Create(_ context.Context, a *model.Admin) error {
	if _, ok := f.admins[a.Email]; ok {
		return errors.New("duplicate")
	}
	f.nextID++
	a.ID = f.nextID
	f.admins[a.Email] = a
	return nil
}

func (f *fakeAdminStore) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	a, ok := f.admins[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return a, nil
}

func (f *fakeAdminStore) GetByIdentifier(_ context.Context, identifier string) (*model.Admin, error) {
	for _, a := range f.admins {
		if a.Email == identifier || a.Username == identifier {
			return a, nil
		}
	}
	return nil, errors.New("no rows")
}

func (f *fakeAdminStore) MarkVerified(_ context.Context, id int) error {
	for _, a := range f.admins {
		if a.ID == id {
			a.IsVerified = true
			a.OTP = nil
			a.OTPExpiresAt = nil
			return nil
		}
	}
	return errors.New("no rows")
}

func (f *fakeAdminStore) Delete(_ context.Context, id int) error {
	for email, a := range f.admins {
		if a.ID == id {
			delete(f.admins, email)
			return nil
		}
	}
	return errors.New("no rows")
}

type fakeMailer struct {
	sentTo  []string
	lastOTP string
	err     error
}

func (f *fakeMailer) SendOTP(to, otp string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, to)
	f.lastOTP = otp
	return nil
}

func adminFixture(t *testing.T) (*AdminService, *fakeAdminStore, *fakeMailer) {
	t.Helper()
	store := newFakeAdminStore()
	mail := &fakeMailer{}
	auth := NewAuthService(testAuthConfig())
	svc := NewAdminService(store, auth, mail, 5*time.Minute, zerolog.Nop())
	return svc, store, mail
}

func signupReq() *model.AdminSignupRequest {
	return &model.AdminSignupRequest{
		Username:  "principal",
		Email:     "principal@college.edu",
		Password:  "letmein123",
		SecretKey: "campus-secret",
	}
}

func TestSignUpSendsOTP(t *testing.T) {
	svc, store, mail := adminFixture(t)

	if err := svc.SignUp(context.Background(), signupReq()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if len(mail.sentTo) != 1 || mail.sentTo[0] != "principal@college.edu" {
		t.Fatalf("OTP mail recipients = %v", mail.sentTo)
	}
	if len(mail.lastOTP) != 6 {
		t.Errorf("OTP %q is not 6 digits", mail.lastOTP)
	}

	admin := store.admins["principal@college.edu"]
	if admin == nil {
		t.Fatal("admin not stored")
	}
	if admin.IsVerified {
		t.Error("new admin should start unverified")
	}
	if admin.PasswordHash == "letmein123" {
		t.Error("password stored in plaintext")
	}
}

func TestVerifyOTPHappyPath(t *testing.T) {
	svc, store, mail := adminFixture(t)

	if err := svc.SignUp(context.Background(), signupReq()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if err := svc.VerifyOTP(context.Background(), "principal@college.edu", mail.lastOTP); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	admin := store.admins["principal@college.edu"]
	if !admin.IsVerified {
		t.Error("admin not marked verified")
	}
	if admin.OTP != nil {
		t.Error("OTP not cleared after verification")
	}
}

func TestVerifyOTPWrongCodeDiscardsPending(t *testing.T) {
	svc, store, _ := adminFixture(t)

	if err := svc.SignUp(context.Background(), signupReq()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	err := svc.VerifyOTP(context.Background(), "principal@college.edu", "000000")
	if !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("got %v, want ErrInvalidOTP", err)
	}

	// The pending signup is gone; the user must start over.
	if _, ok := store.admins["principal@college.edu"]; ok {
		t.Error("pending admin survived a failed OTP check")
	}
}

func TestVerifyOTPExpiredDiscardsPending(t *testing.T) {
	svc, store, mail := adminFixture(t)

	if err := svc.SignUp(context.Background(), signupReq()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	expired := time.Now().Add(-time.Minute)
	store.admins["principal@college.edu"].OTPExpiresAt = &expired

	err := svc.VerifyOTP(context.Background(), "principal@college.edu", mail.lastOTP)
	if !errors.Is(err, ErrExpiredOTP) {
		t.Fatalf("got %v, want ErrExpiredOTP", err)
	}
	if _, ok := store.admins["principal@college.edu"]; ok {
		t.Error("pending admin survived an expired OTP")
	}
}

func TestVerifyOTPUnknownEmail(t *testing.T) {
	svc, _, _ := adminFixture(t)

	err := svc.VerifyOTP(context.Background(), "nobody@college.edu", "123456")
	if !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("got %v, want ErrAdminNotFound", err)
	}
}

func verifiedAdmin(t *testing.T, svc *AdminService, store *fakeAdminStore, mail *fakeMailer) {
	t.Helper()
	if err := svc.SignUp(context.Background(), signupReq()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if err := svc.VerifyOTP(context.Background(), "principal@college.edu", mail.lastOTP); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
}

func TestSignInByUsernameAndEmail(t *testing.T) {
	svc, store, mail := adminFixture(t)
	verifiedAdmin(t, svc, store, mail)

	for _, identifier := range []string{"principal", "principal@college.edu"} {
		admin, token, err := svc.SignIn(context.Background(), &model.AdminLoginRequest{
			Identifier: identifier,
			Password:   "letmein123",
			SecretKey:  "campus-secret",
		})
		if err != nil {
			t.Fatalf("SignIn(%q): %v", identifier, err)
		}
		if token == "" {
			t.Errorf("SignIn(%q): empty token", identifier)
		}
		if admin.Username != "principal" {
			t.Errorf("SignIn(%q): wrong admin %+v", identifier, admin)
		}
	}
}

func TestSignInWrongSecretKeyBeatsCorrectPassword(t *testing.T) {
	svc, store, mail := adminFixture(t)
	verifiedAdmin(t, svc, store, mail)

	_, _, err := svc.SignIn(context.Background(), &model.AdminLoginRequest{
		Identifier: "principal",
		Password:   "letmein123",
		SecretKey:  "stolen-guess",
	})
	if !errors.Is(err, ErrWrongSecretKey) {
		t.Fatalf("got %v, want ErrWrongSecretKey", err)
	}
}

func TestSignInUnverifiedRejected(t *testing.T) {
	svc, _, _ := adminFixture(t)
	if err := svc.SignUp(context.Background(), signupReq()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	_, _, err := svc.SignIn(context.Background(), &model.AdminLoginRequest{
		Identifier: "principal",
		Password:   "letmein123",
		SecretKey:  "campus-secret",
	})
	if !errors.Is(err, ErrNotVerified) {
		t.Fatalf("got %v, want ErrNotVerified", err)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc, store, mail := adminFixture(t)
	verifiedAdmin(t, svc, store, mail)

	_, _, err := svc.SignIn(context.Background(), &model.AdminLoginRequest{
		Identifier: "principal",
		Password:   "bad-pass",
		SecretKey:  "campus-secret",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}
