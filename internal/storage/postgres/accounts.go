package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
)

func (r *accountRepository) Create(ctx context.Context, email, passwordHash string) (*model.Account, error) {
	const query = `INSERT INTO accounts (uid, email, password_hash) VALUES ($1, $2, $3) RETURNING created_at`
	a := model.Account{
		UID:          uuid.NewString(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
	}
	if err := r.storage.pool.QueryRow(ctx, query, a.UID, a.Email, a.PasswordHash).Scan(&a.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	const query = `SELECT uid, email, password_hash, created_at FROM accounts WHERE email=$1`
	var a model.Account
	err := r.storage.pool.QueryRow(ctx, query, strings.ToLower(email)).Scan(&a.UID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *accountRepository) GetByUID(ctx context.Context, uid string) (*model.Account, error) {
	const query = `SELECT uid, email, password_hash, created_at FROM accounts WHERE uid=$1`
	var a model.Account
	err := r.storage.pool.QueryRow(ctx, query, uid).Scan(&a.UID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}
