package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/polkiloo/eatery/internal/domain/model"
)

const profileColumns = `uid, display_name, email, phone_number, address, photo_url, favorite_items, created_at, updated_at, last_login`

func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		p         model.Profile
		favorites []byte
	)
	if err := row.Scan(&p.UID, &p.DisplayName, &p.Email, &p.PhoneNumber, &p.Address, &p.PhotoURL, &favorites, &p.CreatedAt, &p.UpdatedAt, &p.LastLogin); err != nil {
		return nil, err
	}
	if len(favorites) > 0 {
		if err := json.Unmarshal(favorites, &p.FavoriteItems); err != nil {
			return nil, fmt.Errorf("decode favorites of %s: %w", p.UID, err)
		}
	}
	return &p, nil
}

func (r *profileRepository) Get(ctx context.Context, uid string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE uid=$1`
	p, err := scanProfile(r.storage.pool.QueryRow(ctx, query, uid))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// Ensure creates an empty profile the first time a customer opens it.
// created_at is set once and never rewritten.
func (r *profileRepository) Ensure(ctx context.Context, identity model.Identity) (*model.Profile, error) {
	const insert = `INSERT INTO users (uid, email) VALUES ($1, $2) ON CONFLICT (uid) DO NOTHING`
	if _, err := r.storage.pool.Exec(ctx, insert, identity.UID, identity.Email); err != nil {
		return nil, err
	}
	return r.Get(ctx, identity.UID)
}

func (r *profileRepository) Update(ctx context.Context, uid string, update model.ProfileUpdate) (*model.Profile, error) {
	query := `UPDATE users SET
                  display_name = COALESCE($2, display_name),
                  phone_number = COALESCE($3, phone_number),
                  address = COALESCE($4, address),
                  photo_url = COALESCE($5, photo_url),
                  updated_at = NOW()
              WHERE uid=$1
              RETURNING ` + profileColumns
	p, err := scanProfile(r.storage.pool.QueryRow(ctx, query, uid, update.DisplayName, update.PhoneNumber, update.Address, update.PhotoURL))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *profileRepository) TouchLogin(ctx context.Context, identity model.Identity) error {
	const query = `INSERT INTO users (uid, email, last_login) VALUES ($1, $2, NOW())
                   ON CONFLICT (uid) DO UPDATE SET last_login = NOW()`
	_, err := r.storage.pool.Exec(ctx, query, identity.UID, identity.Email)
	return err
}
