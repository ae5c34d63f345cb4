// Command seed creates a manager account, or promotes an existing user.
// Registration only ever creates employees, so the first manager has to
// come from here.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/config"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/repository"
	serviceUser "github.com/cmlabs-hris/reimbursement-backend-go/internal/service/user"
	"golang.org/x/term"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	firstName := fs.String("first", "", "First name")
	lastName := fs.String("last", "", "Last name")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		fmt.Fprintln(stdout, "Usage: seed -user <username> -first <first name> -last <last name> [-password <password>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	existing, err := store.Users.GetByUsername(ctx, *username)
	switch {
	case err == nil:
		if existing.IsManager() {
			fmt.Fprintf(stdout, "User %s is already a manager\n", existing.Username)
			return nil
		}
	case errors.Is(err, user.ErrUserNotFound):
		password := *passwordFlag
		if password == "" {
			fmt.Fprint(stdout, "Password: ")
			password, err = readPassword(stdin)
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			fmt.Fprintln(stdout) // Print newline after password input
		}

		userService := serviceUser.NewUserService(store.Transactor, store.Users, store.Reimbursements, store.Sessions)
		existing, err = userService.Register(ctx, user.RegisterRequest{
			Username:  *username,
			FirstName: *firstName,
			LastName:  *lastName,
			Password:  password,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
	default:
		return fmt.Errorf("failed to look up user: %w", err)
	}

	promoted, err := store.Users.UpdateRole(ctx, existing.ID, user.RoleManager)
	if err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s is a manager with ID %d\n", promoted.Username, promoted.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
