package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	repo "github.com/fitlifeai/fitlife-backend/internal/domain/repository"
	"github.com/fitlifeai/fitlife-backend/pkg/helpers"
	"github.com/fitlifeai/fitlife-backend/pkg/mailer"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// API cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmptyUpdate        = errors.New("no fields to update")
	ErrBadConfirmToken    = errors.New("invalid or expired confirmation token")
)

const deleteTokenTTL = 30 * time.Minute

func keyDeleteToken(t string) string { return "user:delete:token:" + t }

// UserService implements registration, login, profile management and
// two-step account deletion.
type UserService struct {
	Repo         repo.UserRepository
	Suggestions  repo.SuggestionRepository
	Transactions repo.TransactionRepository
	JWT          *helpers.JWTManager
	Tokens       TokenStore
	Pub          *helpers.RabbitPublisher
	Logger       *logrus.Logger
	TrialPeriod  time.Duration
	MailEnabled  bool

	// Now is the clock used to stamp the trial window; injectable for tests.
	Now func() time.Time
}

func NewUserService(r repo.UserRepository, sr repo.SuggestionRepository, tr repo.TransactionRepository,
	jwt *helpers.JWTManager, tokens TokenStore, pub *helpers.RabbitPublisher,
	logger *logrus.Logger, trialPeriod time.Duration, mailEnabled bool) *UserService {
	return &UserService{
		Repo:         r,
		Suggestions:  sr,
		Transactions: tr,
		JWT:          jwt,
		Tokens:       tokens,
		Pub:          pub,
		Logger:       logger,
		TrialPeriod:  trialPeriod,
		MailEnabled:  mailEnabled,
		Now:          time.Now,
	}
}

type RegisterInput struct {
	Email               string
	Password            string
	Name                string
	Age                 int
	Weight              float64
	Height              float64
	Goals               string
	DietaryRestrictions string
	WorkoutType         string
	CurrentActivities   string
}

// AuthResult bundles the user with a freshly issued bearer token.
type AuthResult struct {
	User        *entity.User
	Token       string
	TokenExpiry time.Time
}

// Register creates the account and issues the first session token. The trial
// window is fixed here, once: creation time + trial period, never recomputed.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if existing, err := s.Repo.GetByEmail(in.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	u := &entity.User{
		ID:                  uuid.NewString(),
		Email:               in.Email,
		Password:            hash,
		Name:                in.Name,
		Age:                 in.Age,
		Weight:              in.Weight,
		Height:              in.Height,
		Goals:               in.Goals,
		DietaryRestrictions: in.DietaryRestrictions,
		WorkoutType:         in.WorkoutType,
		CurrentActivities:   in.CurrentActivities,
		TrialEndDate:        now.Add(s.TrialPeriod),
	}
	if err := s.Repo.Create(u); err != nil {
		// unique index on email is the source of truth; the lookup above only
		// gives a friendlier fast path
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

// Login verifies credentials and issues a session token. Any failure reads the
// same from the outside.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

func (s *UserService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfileInput carries the whitelisted mutable profile fields. Pointers
// distinguish "not sent" from a zero value; email and premium state are not
// updatable through this path.
type UpdateProfileInput struct {
	Name                *string
	Age                 *int
	Weight              *float64
	Height              *float64
	Goals               *string
	DietaryRestrictions *string
	WorkoutType         *string
	CurrentActivities   *string
}

func (in UpdateProfileInput) empty() bool {
	return in.Name == nil && in.Age == nil && in.Weight == nil && in.Height == nil &&
		in.Goals == nil && in.DietaryRestrictions == nil && in.WorkoutType == nil &&
		in.CurrentActivities == nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	if in.empty() {
		return nil, ErrEmptyUpdate
	}
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Age != nil {
		u.Age = *in.Age
	}
	if in.Weight != nil {
		u.Weight = *in.Weight
	}
	if in.Height != nil {
		u.Height = *in.Height
	}
	if in.Goals != nil {
		u.Goals = *in.Goals
	}
	if in.DietaryRestrictions != nil {
		u.DietaryRestrictions = *in.DietaryRestrictions
	}
	if in.WorkoutType != nil {
		u.WorkoutType = *in.WorkoutType
	}
	if in.CurrentActivities != nil {
		u.CurrentActivities = *in.CurrentActivities
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// RequestDeletion starts two-step account deletion: a one-time confirmation
// token is stored in Redis and mailed to the account's address. The token is
// the only accepted confirmation; no magic phrases.
func (s *UserService) RequestDeletion(ctx context.Context, userID string) (string, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return "", ErrUserNotFound
	}
	tok, err := genToken(32)
	if err != nil {
		return "", err
	}
	if s.Tokens != nil {
		if err := s.Tokens.Set(ctx, keyDeleteToken(tok), u.ID, deleteTokenTTL); err != nil {
			return "", err
		}
	}
	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateDeleteConfirmation,
			Data: map[string]any{
				"Name":      u.Name,
				"Token":     tok,
				"ExpiresIn": deleteTokenTTL.String(),
			},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue delete confirmation email failed")
		}
	}
	return tok, nil
}

// ConfirmDeletion validates the confirmation token and removes the account
// together with its suggestion and transaction records. The token must have
// been issued for the calling user.
func (s *UserService) ConfirmDeletion(ctx context.Context, userID, token string) error {
	if s.Tokens == nil {
		return ErrBadConfirmToken
	}
	uid, err := s.Tokens.Get(ctx, keyDeleteToken(token))
	if err != nil || uid == "" || uid != userID {
		return ErrBadConfirmToken
	}

	if err := s.Suggestions.DeleteByUser(uid); err != nil {
		return err
	}
	if err := s.Transactions.DeleteByUser(uid); err != nil {
		return err
	}
	if err := s.Repo.Delete(uid); err != nil {
		return err
	}
	s.Tokens.Del(ctx, keyDeleteToken(token))
	if s.Logger != nil {
		s.Logger.WithField("user_id", uid).Info("account deleted")
	}
	return nil
}

func genToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
