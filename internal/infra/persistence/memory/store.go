// Package memory provides an in-memory implementation of the persistence
// layer. It backs unit tests and local development without PostgreSQL.
package memory

import (
	"context"
	"sync"
	"time"

	"unica/internal/domain/entity"
	domainerrors "unica/internal/domain/errors"
	"unica/internal/domain/repository"

	"github.com/google/uuid"
)

// Store holds all authentication state behind a single mutex. Repository
// views share the store, so a transaction factory over it sees the same data.
type Store struct {
	mu sync.Mutex

	accounts    map[uuid.UUID]*entity.Account
	byEmail     map[string]uuid.UUID
	refreshToks map[string]*entity.RefreshToken
	resetByMail map[string]*entity.PasswordResetToken
	twoFactor   map[uuid.UUID]*entity.TwoFactorRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:    make(map[uuid.UUID]*entity.Account),
		byEmail:     make(map[string]uuid.UUID),
		refreshToks: make(map[string]*entity.RefreshToken),
		resetByMail: make(map[string]*entity.PasswordResetToken),
		twoFactor:   make(map[uuid.UUID]*entity.TwoFactorRecord),
	}
}

// EnableTwoFactor records a two-factor enrollment for an account. Enrollment
// itself has no API surface yet, so tests and seeds call this directly.
func (s *Store) EnableTwoFactor(accountID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.twoFactor[accountID] = &entity.TwoFactorRecord{
		AccountID: accountID,
		CreatedAt: time.Now(),
	}
}

// --- AccountRepository ---

type accountRepository struct {
	store *Store
}

// NewAccountRepository returns an account repository backed by the store.
func NewAccountRepository(store *Store) repository.AccountRepository {
	return &accountRepository{store: store}
}

func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	account, ok := repo.store.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cloned := *account

	return &cloned, nil
}

func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	id, ok := repo.store.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cloned := *repo.store.accounts[id]

	return &cloned, nil
}

func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	key := account.Email
	if _, exists := repo.store.byEmail[key]; exists {
		// Mirrors the unique index on accounts.email.
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already registered")
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	cloned := *account
	repo.store.accounts[account.ID] = &cloned
	repo.store.byEmail[key] = account.ID

	return nil
}

func (repo *accountRepository) UpdatePasswordHash(ctx context.Context, email string, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	id, ok := repo.store.byEmail[email]
	if !ok {
		return repository.ErrAccountNotFound
	}
	repo.store.accounts[id].PasswordHash = passwordHash

	return nil
}

// --- RefreshTokenRepository ---

type refreshTokenRepository struct {
	store *Store
}

// NewRefreshTokenRepository returns a refresh token repository backed by the store.
func NewRefreshTokenRepository(store *Store) repository.RefreshTokenRepository {
	return &refreshTokenRepository{store: store}
}

func (repo *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	record, ok := repo.store.refreshToks[token]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	cloned := *record

	return &cloned, nil
}

func (repo *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, exists := repo.store.refreshToks[token.Token]; exists {
		return domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token already exists")
	}

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	cloned := *token
	repo.store.refreshToks[token.Token] = &cloned

	return nil
}

func (repo *refreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.refreshToks[token]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(repo.store.refreshToks, token)

	return nil
}

// --- ResetTokenRepository ---

type resetTokenRepository struct {
	store *Store
}

// NewResetTokenRepository returns a reset token repository backed by the store.
func NewResetTokenRepository(store *Store) repository.ResetTokenRepository {
	return &resetTokenRepository{store: store}
}

func (repo *resetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	// Keyed by email, so a newer request replaces the pending token.
	cloned := *token
	repo.store.resetByMail[token.Email] = &cloned

	return nil
}

func (repo *resetTokenRepository) FindByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	for _, record := range repo.store.resetByMail {
		if record.Token == token {
			cloned := *record

			return &cloned, nil
		}
	}

	return nil, repository.ErrResetTokenNotFound
}

func (repo *resetTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	for email, record := range repo.store.resetByMail {
		if record.Token == token {
			delete(repo.store.resetByMail, email)

			return nil
		}
	}

	return repository.ErrResetTokenNotFound
}

// --- TwoFactorRepository ---

type twoFactorRepository struct {
	store *Store
}

// NewTwoFactorRepository returns a two-factor repository backed by the store.
func NewTwoFactorRepository(store *Store) repository.TwoFactorRepository {
	return &twoFactorRepository{store: store}
}

func (repo *twoFactorRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.TwoFactorRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	record, ok := repo.store.twoFactor[accountID]
	if !ok {
		return nil, repository.ErrTwoFactorNotFound
	}
	cloned := *record

	return &cloned, nil
}
