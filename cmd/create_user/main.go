// Command create_user seeds an account from the command line, useful for
// local development before the signup page is reachable.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"task_manager/internal/domain"
	"task_manager/internal/repository"
	"task_manager/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := flag.String("username", "", "username for the new account")
	email := flag.String("email", "", "email for the new account")
	password := flag.String("password", "", "password for the new account")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		log.Fatal("username, email and password are required")
	}

	if errs := service.DefaultPolicy.Validate(*password); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Message)
		}
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	user := &domain.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: string(hash),
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), user); err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("created user %s (id %d)\n", user.Username, user.ID)
}
