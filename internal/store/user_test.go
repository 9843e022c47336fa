package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := New(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "a@b.c", "hash").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := s.CreateUser(context.Background(), "a@b.c", "hash")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := New(db)

	mock.ExpectQuery(`SELECT id, email, password_hash, is_admin, created_at FROM users`).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "is_admin", "created_at"}).
			AddRow("7f9c24e5-2f7a-4b2a-9c3d-111111111111", "a@b.c", "hash", false, time.Now()))

	u, err := s.GetUserByEmail(context.Background(), "a@b.c")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if u.Email != "a@b.c" || u.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", u)
	}

	mock.ExpectQuery(`SELECT id, email, password_hash, is_admin, created_at FROM users`).
		WithArgs("missing@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "is_admin", "created_at"}))

	if _, err := s.GetUserByEmail(context.Background(), "missing@b.c"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
