package user

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stickify/stickify/internal/errs"
	"github.com/stickify/stickify/pkg/auth"
)

// ResetMailer delivers password-reset links. Nil disables the recovery flow.
type ResetMailer interface {
	SendResetEmail(to, resetLink string) error
}

type Service struct {
	repo          Store
	tokens        *auth.Manager
	mailer        ResetMailer
	resetLinkBase string
}

func NewService(repo Store, tokens *auth.Manager, mailer ResetMailer, resetLinkBase string) *Service {
	return &Service{repo: repo, tokens: tokens, mailer: mailer, resetLinkBase: resetLinkBase}
}

// SignUp creates a user with a bcrypt-hashed password and returns a signed
// token. A duplicate username or email surfaces as a ConflictError from the
// store's unique constraints.
func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (string, *User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	u := &User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Premium:  req.Premium,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return "", nil, err
	}

	token, err := s.Token(u)
	if err != nil {
		return "", nil, err
	}
	return token, u.Sanitized(), nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, errs.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, errs.ErrInvalidCredentials
	}

	token, err := s.Token(u)
	if err != nil {
		return "", nil, err
	}
	return token, u.Sanitized(), nil
}

// Token issues a signed access token whose payload is the user minus the
// password field.
func (s *Service) Token(u *User) (string, error) {
	return s.tokens.Issue(u.ID, u.Username, u.Email, u.Premium)
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Sanitized(), nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return u.Sanitized(), nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.Sanitized(), nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sanitized := make([]User, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, *users[i].Sanitized())
	}
	return sanitized, nil
}

// Update applies a partial update. A new password is re-hashed before it
// reaches the store; the full updated record comes back.
func (s *Service) Update(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hashed)
		req.Password = &h
	}
	u, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return u.Sanitized(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ToggleFollow adds or removes the follow relationship between the follower
// and the target, updating both records atomically. The operation is
// idempotent in either direction and returns the updated follower.
func (s *Service) ToggleFollow(ctx context.Context, followerID, targetEmail string, follow bool) (*User, error) {
	u, err := s.repo.ToggleFollow(ctx, followerID, targetEmail, follow)
	if err != nil {
		return nil, err
	}
	return u.Sanitized(), nil
}

func (s *Service) Followers(ctx context.Context, id string) ([]string, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return append([]string{}, u.Followers...), nil
}

func (s *Service) Following(ctx context.Context, id string) ([]string, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return append([]string{}, u.Following...), nil
}

// ForgotPassword mails a reset link when the email is registered. The result
// is identical either way so the endpoint cannot be used to probe for
// registered emails.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if s.mailer == nil {
		return nil
	}
	if _, err := s.repo.GetByEmail(ctx, email); err != nil {
		return nil
	}
	token, err := s.tokens.IssueReset(email)
	if err != nil {
		return err
	}
	return s.mailer.SendResetEmail(email, s.resetLinkBase+"?token="+token)
}

// ResetPassword verifies a reset token and stores the re-hashed password.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	email, err := s.tokens.ParseReset(token)
	if err != nil {
		return err
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = s.Update(ctx, u.ID, &UpdateUserRequest{Password: &password})
	return err
}
