package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
)

var profileColumnNames = []string{"uid", "display_name", "email", "phone_number", "address", "photo_url", "favorite_items", "created_at", "updated_at", "last_login"}

func TestProfileRepositoryGetAndEnsure(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &profileRepository{storage: storage}
	ctx := context.Background()
	created := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE uid=").WithArgs("uid-1").WillReturnRows(
		pgxmockv3.NewRows(profileColumnNames).AddRow("uid-1", "Ana", "ana@eatery.test", "0123", "Jalan 1", "", []byte(`["kabsa"]`), created, nil, nil))
	p, err := repo.Get(ctx, "uid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DisplayName != "Ana" || len(p.FavoriteItems) != 1 || p.FavoriteItems[0] != "kabsa" {
		t.Fatalf("unexpected profile: %+v", p)
	}

	mock.ExpectQuery("SELECT (.+) FROM users WHERE uid=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("INSERT INTO users").WithArgs("uid-2", "new@eatery.test").WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE uid=").WithArgs("uid-2").WillReturnRows(
		pgxmockv3.NewRows(profileColumnNames).AddRow("uid-2", "", "new@eatery.test", "", "", "", []byte(`[]`), created, nil, nil))
	p, err = repo.Ensure(ctx, model.Identity{UID: "uid-2", Email: "new@eatery.test"})
	if err != nil || p.Email != "new@eatery.test" {
		t.Fatalf("unexpected ensure result %+v err=%v", p, err)
	}

	mock.ExpectExec("INSERT INTO users").WithArgs("uid-3", "x@eatery.test").WillReturnError(errors.New("insert"))
	if _, err := repo.Ensure(ctx, model.Identity{UID: "uid-3", Email: "x@eatery.test"}); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("SELECT (.+) FROM users WHERE uid=").WithArgs("uid-4").WillReturnRows(
		pgxmockv3.NewRows(profileColumnNames).AddRow("uid-4", "", "", "", "", "", []byte(`{`), created, nil, nil))
	if _, err := repo.Get(ctx, "uid-4"); err == nil {
		t.Fatal("expected favorites decode error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestProfileRepositoryUpdate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &profileRepository{storage: storage}
	ctx := context.Background()
	now := time.Now()

	phone := "0199"
	update := model.ProfileUpdate{PhoneNumber: &phone}
	mock.ExpectQuery("UPDATE users SET").WithArgs("uid-1", pgxmockv3.AnyArg(), &phone, pgxmockv3.AnyArg(), pgxmockv3.AnyArg()).WillReturnRows(
		pgxmockv3.NewRows(profileColumnNames).AddRow("uid-1", "Ana", "ana@eatery.test", "0199", "Jalan 1", "", []byte(`[]`), now, &now, nil))
	p, err := repo.Update(ctx, "uid-1", update)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PhoneNumber != "0199" || p.UpdatedAt == nil {
		t.Fatalf("unexpected profile: %+v", p)
	}

	mock.ExpectQuery("UPDATE users SET").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Update(ctx, "missing", update); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestProfileRepositoryTouchLogin(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &profileRepository{storage: storage}

	mock.ExpectExec("INSERT INTO users").WithArgs("uid-1", "ana@eatery.test").WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.TouchLogin(context.Background(), model.Identity{UID: "uid-1", Email: "ana@eatery.test"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("boom"))
	if err := repo.TouchLogin(context.Background(), model.Identity{UID: "uid-1"}); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
