package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"farmer-hub/internal/catalog"
	"farmer-hub/internal/domain"
	"farmer-hub/internal/session"
	"farmer-hub/internal/store"

	"go.uber.org/zap"
)

// Shell is the interactive terminal frontend. It holds no business rules:
// every command maps onto a typed core operation and the shell only formats
// the result. It reads from an io.Reader and writes to an io.Writer so
// scripted sessions can drive it in tests.
type Shell struct {
	controller *session.Controller
	catalog    *catalog.Catalog
	logger     *zap.Logger
	in         *bufio.Scanner
	out        io.Writer

	// browsed keeps the last listing shown so "add <n>" can index into it.
	browsed []domain.Product
	// prefill carries the username from a successful registration into the
	// next login prompt.
	prefill string
}

// NewShell creates a shell bound to the given core components and streams.
func NewShell(controller *session.Controller, cat *catalog.Catalog, logger *zap.Logger, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		controller: controller,
		catalog:    cat,
		logger:     logger,
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// Run processes commands until quit, end of input or context cancellation.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "FarmerHub (type 'help' for commands)")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s.prompt()
		if !s.in.Scan() {
			return s.in.Err()
		}

		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		command, args := fields[0], fields[1:]
		if command == "quit" || command == "exit" {
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		}

		s.dispatch(command, args, line)
	}
}

func (s *Shell) prompt() {
	if account := s.controller.Active(); account != nil {
		fmt.Fprintf(s.out, "%s (%d in cart)> ", account.Username, s.controller.Cart().ItemCount())
		return
	}
	if s.prefill != "" {
		fmt.Fprintf(s.out, "login as %s> ", s.prefill)
		return
	}
	fmt.Fprint(s.out, "> ")
}

func (s *Shell) dispatch(command string, args []string, line string) {
	switch command {
	case "help":
		s.printHelp()
	case "login":
		s.handleLogin(args)
	case "register":
		s.handleRegister(args)
	case "reset":
		s.handleReset(args)
	case "browse":
		s.handleBrowse(args)
	case "sell":
		s.handleSell(line)
	case "add":
		s.handleAdd(args)
	case "cart":
		s.handleCart()
	case "checkout":
		s.handleCheckout()
	case "clear":
		s.controller.Cart().Clear()
		fmt.Fprintln(s.out, "Cart cleared.")
	case "logout":
		s.controller.Logout()
		fmt.Fprintln(s.out, "Logged out.")
	default:
		fmt.Fprintf(s.out, "Unknown command %q, type 'help'.\n", command)
	}
}

func (s *Shell) printHelp() {
	if s.controller.State() == session.StateLoggedOut {
		fmt.Fprintln(s.out, "Commands: login <user> <password> | register <user> <password> <confirm> <email> | reset <user-or-email> | quit")
		return
	}
	fmt.Fprintln(s.out, "Commands: browse [category] | add <n> | sell <name>|<description>|<category>|<price> | cart | checkout | clear | logout | quit")
}

func (s *Shell) handleLogin(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: login <user> <password>")
		return
	}

	account, err := s.controller.Login(args[0], args[1])
	if err != nil {
		switch err {
		case store.ErrAccountNotFound:
			fmt.Fprintln(s.out, "User not found!")
		case store.ErrWrongPassword:
			fmt.Fprintln(s.out, "Invalid password.")
		default:
			fmt.Fprintf(s.out, "Login failed: %v\n", err)
		}
		return
	}

	s.prefill = ""
	fmt.Fprintf(s.out, "Welcome, %s!\n", account.Username)
}

func (s *Shell) handleRegister(args []string) {
	if len(args) != 4 {
		fmt.Fprintln(s.out, "Usage: register <user> <password> <confirm> <email>")
		return
	}
	username, password, confirm, email := args[0], args[1], args[2], args[3]

	// Re-entry check is input handling, not an account rule.
	if password != confirm {
		fmt.Fprintln(s.out, "Passwords do not match!")
		return
	}

	account, err := s.controller.Register(username, password, email)
	if err != nil {
		fmt.Fprintf(s.out, "Registration failed: %v\n", err)
		return
	}

	s.prefill = account.Username
	fmt.Fprintln(s.out, "Registration successful! Please log in.")
}

func (s *Shell) handleReset(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: reset <user-or-email>")
		return
	}

	if _, found := s.controller.ResolveForReset(args[0]); found {
		fmt.Fprintln(s.out, "A password reset link has been simulated to your registered email.")
	} else {
		fmt.Fprintln(s.out, "No account found for that username or email.")
	}
}

func (s *Shell) handleBrowse(args []string) {
	filter := domain.CategoryAll
	if len(args) > 0 {
		filter = domain.Category(args[0])
	}

	s.browsed = s.catalog.List(filter)
	if len(s.browsed) == 0 {
		fmt.Fprintln(s.out, "No products found.")
		return
	}

	for i, p := range s.browsed {
		fmt.Fprintf(s.out, "%2d. %s [%s] ₹%.2f/unit (by %s)\n      %s\n",
			i+1, p.Name, p.Category, p.Price, p.ListedBy, p.Description)
	}
}

// handleSell parses "sell <name>|<description>|<category>|<price>" from the
// raw line so names and descriptions may contain spaces.
func (s *Shell) handleSell(line string) {
	account := s.controller.Active()
	if account == nil {
		fmt.Fprintln(s.out, "Log in before listing a product.")
		return
	}

	rest := strings.TrimSpace(strings.TrimPrefix(line, "sell"))
	parts := strings.Split(rest, "|")
	if len(parts) != 4 {
		fmt.Fprintln(s.out, "Usage: sell <name>|<description>|<category>|<price>")
		return
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		fmt.Fprintln(s.out, "Price must be a valid number.")
		return
	}

	product, err := s.catalog.Add(parts[0], parts[1], domain.Category(strings.TrimSpace(parts[2])), price, account.Username)
	if err != nil {
		fmt.Fprintf(s.out, "Listing failed: %v\n", err)
		return
	}

	fmt.Fprintf(s.out, "Product %q listed successfully!\n", product.Name)
}

func (s *Shell) handleAdd(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: add <n> (an index from the last browse)")
		return
	}

	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 || index > len(s.browsed) {
		fmt.Fprintln(s.out, "No such product — browse first, then add by number.")
		return
	}

	product := s.browsed[index-1]
	s.controller.Cart().AddItem(product)
	fmt.Fprintf(s.out, "%s added to cart (%d items).\n", product.Name, s.controller.Cart().ItemCount())
}

func (s *Shell) handleCart() {
	lines := s.controller.Cart().Lines()
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "Your cart is empty.")
		return
	}

	for _, line := range lines {
		fmt.Fprintf(s.out, "%dx %s @ ₹%.2f = ₹%.2f\n",
			line.Quantity, line.Product.Name, line.Product.Price, line.Total())
	}
	fmt.Fprintf(s.out, "Subtotal: ₹%.2f\n", s.controller.Cart().Subtotal())
}

func (s *Shell) handleCheckout() {
	if s.controller.Cart().ItemCount() == 0 {
		fmt.Fprintln(s.out, "Your cart is empty.")
		return
	}

	total := s.controller.Cart().Checkout()
	s.logger.Info("Checkout completed", zap.Float64("total", total))
	fmt.Fprintf(s.out, "Checkout successful! (Simulated) Total: ₹%.2f\n", total)
}
