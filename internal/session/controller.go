package session

import (
	"farmer-hub/internal/cart"
	"farmer-hub/internal/domain"
	"farmer-hub/internal/store"

	"go.uber.org/zap"
)

// State is the controller's position in the login lifecycle.
type State int

const (
	StateLoggedOut State = iota
	StateLoggedIn
)

func (s State) String() string {
	if s == StateLoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Controller orchestrates the single user session: it authenticates against
// the credential store, binds the active account, and owns the cart's
// lifecycle. The presentation layer consumes it as a state machine.
type Controller struct {
	store  store.CredentialStore
	cart   *cart.Session
	logger *zap.Logger
	active *domain.Account
}

// NewController creates a controller in the LoggedOut state with an empty cart.
func NewController(credentials store.CredentialStore, logger *zap.Logger) *Controller {
	return &Controller{
		store:  credentials,
		cart:   cart.NewSession(),
		logger: logger,
	}
}

// Login authenticates the identifier and binds the account on success.
func (c *Controller) Login(identifier, password string) (*domain.Account, error) {
	account, err := c.store.Authenticate(identifier, password)
	if err != nil {
		c.logger.Debug("Login failed", zap.String("identifier", identifier), zap.Error(err))
		return nil, err
	}

	c.active = account
	c.logger.Info("User logged in", zap.String("username", account.Key()))
	return account, nil
}

// Logout unbinds the active account and clears the cart. Calling it while
// already logged out is a no-op.
func (c *Controller) Logout() {
	if c.active == nil {
		return
	}

	c.logger.Info("User logged out", zap.String("username", c.active.Key()))
	c.active = nil
	c.cart.Clear()
}

// Register creates a new account. Registration never auto-logs-in; the
// created account is returned so the caller can pre-fill the login prompt
// with the new username.
func (c *Controller) Register(username, password, email string) (*domain.Account, error) {
	return c.store.Register(username, password, email)
}

// ResolveForReset finds the account behind a simulated password reset
// request, by username or registered email.
func (c *Controller) ResolveForReset(identifier string) (*domain.Account, bool) {
	return c.store.ResolveForReset(identifier)
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	if c.active != nil {
		return StateLoggedIn
	}
	return StateLoggedOut
}

// Active returns the bound account, or nil while logged out.
func (c *Controller) Active() *domain.Account {
	return c.active
}

// Cart returns the session cart. Cart operations are accepted in any state;
// reaching cart screens only after login is the presentation layer's job.
func (c *Controller) Cart() *cart.Session {
	return c.cart
}

// Shutdown flushes the credential store. A failed flush is logged and
// reported but is never fatal to the process.
func (c *Controller) Shutdown() error {
	if err := c.store.Save(); err != nil {
		c.logger.Error("Failed to flush credential store", zap.Error(err))
		return err
	}
	return nil
}
