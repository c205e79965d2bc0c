package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/isaacjstriker/hangman/internal/database"
)

var (
	// ErrBadCredentials is returned for an unknown user or a wrong password.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrPasswordMismatch is returned when the confirmation differs.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// CLIAuth handles authentication through the CLI
type CLIAuth struct {
	db      *database.DB
	session *SessionManager
	in      *bufio.Reader
	out     io.Writer
	secret  func(prompt string) (string, error)
}

// NewCLIAuth creates a new CLI authentication handler. Passwords are read
// without echo when in is a terminal.
func NewCLIAuth(db *database.DB, session *SessionManager, in io.Reader, out io.Writer) *CLIAuth {
	a := &CLIAuth{
		db:      db,
		session: session,
		in:      bufio.NewReader(in),
		out:     out,
	}
	a.secret = a.ReadInput
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.secret = func(prompt string) (string, error) {
			fmt.Fprint(a.out, prompt)
			bytePassword, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(a.out)
			if err != nil {
				return "", err
			}
			return string(bytePassword), nil
		}
	}
	return a
}

// WhoAmI prints who the console is signed in as.
func (a *CLIAuth) WhoAmI() {
	fmt.Fprintln(a.out, a.session.GetUserInfo())
}

// ReadInput prints prompt and reads one trimmed line.
func (a *CLIAuth) ReadInput(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	input, err := a.in.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// Login checks a username and password and saves the session.
func (a *CLIAuth) Login(ctx context.Context) error {
	fmt.Fprintln(a.out, "Login to Your Account")

	username, err := a.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("error reading username: %w", err)
	}
	password, err := a.secret("Password: ")
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}

	player, passwordHash, err := a.db.GetPlayerByUsername(ctx, username)
	if errors.Is(err, database.ErrPlayerNotFound) {
		return ErrBadCredentials
	}
	if err != nil {
		return err
	}
	if !CheckPassword(password, passwordHash) {
		return ErrBadCredentials
	}

	if err := a.session.SaveSession(player.ID, player.Username); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome back, %s!\n", player.Username)
	return nil
}

// Register creates an account and logs it in.
func (a *CLIAuth) Register(ctx context.Context) error {
	fmt.Fprintln(a.out, "Create New Account")

	username, err := a.ReadInput("Username (3-50 characters): ")
	if err != nil {
		return fmt.Errorf("error reading username: %w", err)
	}
	if err := ValidateUsername(username); err != nil {
		return err
	}

	password, err := a.secret("Password (8+ characters): ")
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	confirmPassword, err := a.secret("Confirm Password: ")
	if err != nil {
		return fmt.Errorf("error reading confirmation: %w", err)
	}
	if password != confirmPassword {
		return ErrPasswordMismatch
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	player, err := a.db.CreatePlayer(ctx, username, passwordHash)
	if err != nil {
		return err
	}
	if err := a.session.SaveSession(player.ID, player.Username); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created successfully! Welcome, %s!\n", player.Username)
	return nil
}

// Logout clears the saved session.
func (a *CLIAuth) Logout() error {
	current := a.session.GetCurrentSession()

	if err := a.session.ClearSession(); err != nil {
		return err
	}

	if current != nil {
		fmt.Fprintf(a.out, "Goodbye, %s! You have been logged out.\n", current.Username)
	} else {
		fmt.Fprintln(a.out, "You were not logged in.")
	}
	return nil
}
