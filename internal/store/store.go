package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"farmer-hub/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrWrongPassword   = errors.New("invalid password")
)

// CredentialStore defines the interface for account storage and lookup
type CredentialStore interface {
	Register(username, password, email string) (*domain.Account, error)
	Authenticate(identifier, password string) (*domain.Account, error)
	ResolveForReset(identifier string) (*domain.Account, bool)
	Put(account domain.Account)
	Count() int
	Load()
	Save() error
}

type fileStore struct {
	path     string
	logger   *zap.Logger
	accounts map[string]domain.Account
}

// NewFileStore creates a CredentialStore backed by a JSON snapshot file.
// The store is empty until Load is called.
func NewFileStore(path string, logger *zap.Logger) CredentialStore {
	return &fileStore{
		path:     path,
		logger:   logger,
		accounts: make(map[string]domain.Account),
	}
}

// Load reads the snapshot from disk. A missing file is a normal first run
// and a corrupt file is logged and skipped; both leave the store empty.
// Load never fails startup.
func (s *fileStore) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Credential snapshot not found, starting empty",
				zap.String("path", s.path))
		} else {
			s.logger.Warn("Failed to read credential snapshot",
				zap.String("path", s.path), zap.Error(err))
		}
		return
	}

	var records []domain.Account
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("Credential snapshot is corrupt, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return
	}

	s.accounts = make(map[string]domain.Account, len(records))
	for _, account := range records {
		s.accounts[account.Key()] = account
	}

	s.logger.Info("Loaded credential snapshot",
		zap.String("path", s.path), zap.Int("accounts", len(s.accounts)))
}

// Save writes the full snapshot in a single pass. Record order in the file
// is not significant; records are sorted by key so reruns produce identical
// files.
func (s *fileStore) Save() error {
	records := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		records = append(records, account)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key() < records[j].Key()
	})

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credential snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credential snapshot: %w", err)
	}

	s.logger.Info("Saved credential snapshot",
		zap.String("path", s.path), zap.Int("accounts", len(records)))
	return nil
}

// Register validates the fields and stores a new account keyed by the
// lower-cased username. Each validation failure surfaces as one specific
// sentinel error so the caller can render a precise message.
func (s *fileStore) Register(username, password, email string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := checkRegistration(username, password, email); err != nil {
		return nil, err
	}

	key := strings.ToLower(username)
	if _, exists := s.accounts[key]; exists {
		return nil, ErrDuplicateUsername
	}

	account := domain.Account{
		Username: username,
		Password: password,
		Email:    email,
	}
	s.accounts[key] = account

	s.logger.Info("Registered account", zap.String("username", key))
	return &account, nil
}

// Authenticate looks the identifier up as a case-insensitive username and
// compares the password exactly.
func (s *fileStore) Authenticate(identifier, password string) (*domain.Account, error) {
	key := strings.ToLower(strings.TrimSpace(identifier))

	account, exists := s.accounts[key]
	if !exists {
		return nil, ErrAccountNotFound
	}
	if account.Password != password {
		return nil, ErrWrongPassword
	}

	return &account, nil
}

// ResolveForReset finds the account for a simulated password reset: first by
// the username key, then by a linear case-insensitive email scan. Email is
// not indexed, so the fallback walks every account.
func (s *fileStore) ResolveForReset(identifier string) (*domain.Account, bool) {
	identifier = strings.TrimSpace(identifier)

	if account, exists := s.accounts[strings.ToLower(identifier)]; exists {
		return &account, true
	}

	for _, account := range s.accounts {
		if strings.EqualFold(account.Email, identifier) {
			return &account, true
		}
	}

	return nil, false
}

// Put inserts an account without validation. Used to seed the default
// account, whose password predates the registration policy.
func (s *fileStore) Put(account domain.Account) {
	s.accounts[account.Key()] = account
}

// Count returns the number of stored accounts.
func (s *fileStore) Count() int {
	return len(s.accounts)
}
