// Command hashpw reads a password from the terminal without echo and
// prints its bcrypt hash. Useful for seeding accounts by hand.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/ivankor/gotasker/internal/auth"
	"github.com/ivankor/gotasker/internal/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hashpw: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := validation.ValidatePassword(string(password)); err != nil {
		return err
	}

	hash, err := auth.NewPasswordHasher().Hash(string(password))
	if err != nil {
		return err
	}

	fmt.Println(hash)
	return nil
}
