// Command useradmin creates a user directly in the configured store. It is
// mainly used to bootstrap the first admin account, since listing users over
// HTTP already requires one.
//
// Usage:
//
//	useradmin -email admin@example.com -name Admin -admin
//	useradmin -email ops@example.com -name Ops -admin -generate
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/userauth/userauth-go/internal/config"
	"github.com/userauth/userauth-go/internal/crypto"
	"github.com/userauth/userauth-go/internal/logging"
	"github.com/userauth/userauth-go/internal/model"
	"github.com/userauth/userauth-go/internal/repository"
	"github.com/userauth/userauth-go/internal/service"
	"golang.org/x/term"
)

const generatedLength = 20

// readPassword is swapped out in tests to avoid touching the terminal.
var readPassword = term.ReadPassword

type options struct {
	email    string
	name     string
	admin    bool
	generate bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("useradmin", flag.ContinueOnError)
	fs.StringVar(&opts.email, "email", "", "email of the new user (required)")
	fs.StringVar(&opts.name, "name", "", "display name of the new user (required)")
	fs.BoolVar(&opts.admin, "admin", false, "grant admin privileges")
	fs.BoolVar(&opts.generate, "generate", false, "generate a random password instead of prompting")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.email == "" {
		return options{}, errors.New("-email is required")
	}
	if opts.name == "" {
		return options{}, errors.New("-name is required")
	}
	return opts, nil
}

// obtainPassword either generates a password and prints it to w, or prompts
// for one without echo.
func obtainPassword(opts options, w io.Writer) (string, error) {
	if opts.generate {
		pw, err := crypto.GeneratePassword(generatedLength)
		if err != nil {
			return "", fmt.Errorf("generating password: %w", err)
		}
		fmt.Fprintf(w, "Generated password (shown once): %s\n", pw)
		return pw, nil
	}

	fmt.Fprint(w, "Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(pw) == 0 {
		return "", service.ErrPasswordRequired
	}
	return string(pw), nil
}

func run(ctx context.Context, svc *service.UserService, opts options, w io.Writer) error {
	password, err := obtainPassword(opts, w)
	if err != nil {
		return err
	}

	user, err := svc.CreateUser(ctx, model.CreateUserRequest{
		Email:    opts.email,
		Password: password,
		Name:     opts.name,
		Admin:    opts.admin,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Created user %s (%s), admin=%t\n", user.ID, user.Email, user.Admin)
	return nil
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(cfg.Env, cfg.LogLevel, os.Stderr))

	dialect, err := repository.ParseDialect(cfg.DBDriver)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	db, err := repository.NewDB(dialect, cfg.DatabaseDSN)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := repository.Migrate(ctx, db, dialect); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	svc := service.NewUserService(repository.NewUserRepository(db, dialect), cfg.JWTSecret, cfg.JWTExpiry)
	if err := run(ctx, svc, opts, os.Stdout); err != nil {
		slog.Error("create user failed", "error", err)
		os.Exit(1)
	}
}
