package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateUser(ctx context.Context, create *store.User) (*store.User, error) {
	result, err := d.db.ExecContext(ctx,
		"INSERT INTO `user` (`username`, `nickname`, `password_hash`) VALUES (?, ?, ?)",
		create.Username, create.Nickname, create.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	rawID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	id := int32(rawID)
	list, err := d.ListUsers(ctx, &store.FindUser{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("user %d not found after insert", id)
	}
	return list[0], nil
}

func (d *DB) ListUsers(ctx context.Context, find *store.FindUser) ([]*store.User, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "`id` = ?"), append(args, *v)
	}
	if v := find.Username; v != nil {
		where, args = append(where, "`username` = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		"SELECT `id`, `username`, `nickname`, `password_hash`, UNIX_TIMESTAMP(`created_ts`) FROM `user` WHERE %s ORDER BY `id`",
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
	result, err := d.db.ExecContext(ctx,
		"INSERT INTO `access_token` (`user_id`, `token`, `description`) VALUES (?, ?, ?)",
		create.UserID, create.Token, create.Description,
	)
	if err != nil {
		return nil, err
	}
	rawID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	create.ID = int32(rawID)
	return create, nil
}

func (d *DB) ListAccessTokens(ctx context.Context, find *store.FindAccessToken) ([]*store.AccessToken, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.UserID; v != nil {
		where, args = append(where, "`user_id` = ?"), append(args, *v)
	}
	if v := find.Token; v != nil {
		where, args = append(where, "`token` = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		"SELECT `id`, `user_id`, `token`, `description`, UNIX_TIMESTAMP(`created_ts`) FROM `access_token` WHERE %s ORDER BY `id`",
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
