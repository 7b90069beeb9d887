package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateUser(ctx context.Context, create *store.User) (*store.User, error) {
	stmt := `INSERT INTO "user" (username, nickname, password_hash) VALUES ($1, $2, $3)
	         RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt, create.Username, create.Nickname, create.PasswordHash).
		Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListUsers(ctx context.Context, find *store.FindUser) ([]*store.User, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Username; v != nil {
		where, args = append(where, "username = "+placeholder(len(args)+1)), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, username, nickname, password_hash, created_ts FROM "user" WHERE %s ORDER BY id`,
		strings.Join(where, " AND "),
	)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.User
	for rows.Next() {
		u := &store.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Nickname, &u.PasswordHash, &u.CreatedTs); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (d *DB) CreateAccessToken(ctx context.Context, create *store.AccessToken) (*store.AccessToken, error) {
	stmt := `INSERT INTO access_token (user_id, token, description) VALUES ($1, $2, $3)
	         RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt, create.UserID, create.Token, create.Description).
		Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListAccessTokens(ctx context.Context, find *store.FindAccessToken) ([]*store.AccessToken, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Token; v != nil {
		where, args = append(where, "token = "+placeholder(len(args)+1)), append(args, *v)
	}
	query := fmt.Sprintf(
		"SELECT id, user_id, token, description, created_ts FROM access_token WHERE %s ORDER BY id",
		strings.Join(where, " AND "),
	)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.AccessToken
	for rows.Next() {
		t := &store.AccessToken{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.Description, &t.CreatedTs); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
