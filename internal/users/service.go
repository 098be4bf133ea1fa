package users

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLen = 72
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var compareHash = bcrypt.CompareHashAndPassword

type Service struct {
	Repo Repo
	Cost int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Cost: bcrypt.DefaultCost}
}

// SignupInput is a registration request.
type SignupInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FullName        string `json:"fullName"`
}

// Signup validates the input, hashes the password and creates the user.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	email := NormalizeEmail(in.Email)
	if problems := validateSignup(email, in.Password, in.ConfirmPassword); len(problems) > 0 {
		return User{}, &ValidationError{Problems: problems}
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost())
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Provider:     ProviderPassword,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

// Login checks credentials. Unknown emails and wrong passwords both return
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return User{}, &ValidationError{Problems: []string{"email and password are required"}}
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	if err != nil || user.PasswordHash == "" {
		_ = compareHash(s.dummy(), []byte(password))
		return User{}, ErrInvalidCredentials
	}
	if err := compareHash([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost())
	})
	return s.dummyHash
}

// UpsertFromAuth persists an identity coming from an external provider.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	user.Email = NormalizeEmail(user.Email)
	if strings.TrimSpace(user.ID) == "" || user.Email == "" {
		return errors.New("user id and email are required")
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignup(email, password, confirm string) []string {
	var problems []string
	if email == "" || password == "" {
		return []string{"email and password are required"}
	}
	if !emailPattern.MatchString(email) {
		problems = append(problems, "invalid email format")
	}
	if password != confirm {
		problems = append(problems, "passwords do not match")
	}
	problems = append(problems, passwordProblems(password)...)
	return problems
}

func passwordProblems(password string) []string {
	var problems []string
	if len(password) < minPasswordLen {
		problems = append(problems, "password must be at least 8 characters long")
	}
	if len(password) > maxPasswordLen {
		problems = append(problems, "password must be at most 72 bytes long")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		problems = append(problems, "password must contain at least one uppercase letter")
	}
	if !lower {
		problems = append(problems, "password must contain at least one lowercase letter")
	}
	if !digit {
		problems = append(problems, "password must contain at least one number")
	}
	return problems
}

func (s *Service) cost() int {
	if s.Cost == 0 {
		return bcrypt.DefaultCost
	}
	return s.Cost
}
