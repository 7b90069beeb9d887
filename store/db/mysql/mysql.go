// Package mysql implements store.Driver on go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

// DB is the MySQL driver.
type DB struct {
	db *sql.DB
}

// NewDB opens a connection using a go-sql-driver DSN.
func NewDB(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("dsn required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "migrate mysql")
		}
	}
	return nil
}

var schema = []string{
	"CREATE TABLE IF NOT EXISTS `user` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`username` VARCHAR(256) NOT NULL UNIQUE," +
		"`nickname` VARCHAR(256) NOT NULL DEFAULT ''," +
		"`password_hash` VARCHAR(256) NOT NULL," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)",
	"CREATE TABLE IF NOT EXISTS `access_token` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`user_id` INT NOT NULL," +
		"`token` VARCHAR(256) NOT NULL UNIQUE," +
		"`description` TEXT NOT NULL," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"KEY `idx_access_token_user` (`user_id`))",
	"CREATE TABLE IF NOT EXISTS `project` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`uid` VARCHAR(256) NOT NULL UNIQUE," +
		"`creator_id` INT NOT NULL," +
		"`name` TEXT NOT NULL," +
		"`status` VARCHAR(64) NOT NULL DEFAULT 'ACTIVE'," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"`updated_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)",
	"CREATE TABLE IF NOT EXISTS `project_member` (" +
		"`project_id` INT NOT NULL," +
		"`user_id` INT NOT NULL," +
		"`role` VARCHAR(64) NOT NULL DEFAULT 'MEMBER'," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"PRIMARY KEY (`project_id`, `user_id`))",
	"CREATE TABLE IF NOT EXISTS `scene` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`uid` VARCHAR(256) NOT NULL UNIQUE," +
		"`project_id` INT NOT NULL," +
		"`number` VARCHAR(64) NOT NULL," +
		"`heading` TEXT NOT NULL," +
		"`synopsis` TEXT NOT NULL," +
		"`page_eighths` INT NOT NULL DEFAULT 0," +
		"`status` VARCHAR(64) NOT NULL DEFAULT 'DRAFT'," +
		"`sort_order` INT NOT NULL DEFAULT 0," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"`updated_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"KEY `idx_scene_project` (`project_id`))",
	"CREATE TABLE IF NOT EXISTS `cast_member` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`uid` VARCHAR(256) NOT NULL UNIQUE," +
		"`project_id` INT NOT NULL," +
		"`name` TEXT NOT NULL," +
		"`character_name` TEXT NOT NULL," +
		"`cast_number` INT NOT NULL DEFAULT 0," +
		"`status` VARCHAR(64) NOT NULL DEFAULT 'CONFIRMED'," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"`updated_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)",
	"CREATE TABLE IF NOT EXISTS `crew_member` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`uid` VARCHAR(256) NOT NULL UNIQUE," +
		"`project_id` INT NOT NULL," +
		"`name` TEXT NOT NULL," +
		"`role` VARCHAR(128) NOT NULL DEFAULT ''," +
		"`department` VARCHAR(128) NOT NULL DEFAULT ''," +
		"`email` VARCHAR(256) NOT NULL DEFAULT ''," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"`updated_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)",
	"CREATE TABLE IF NOT EXISTS `location` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`uid` VARCHAR(256) NOT NULL UNIQUE," +
		"`project_id` INT NOT NULL," +
		"`name` TEXT NOT NULL," +
		"`address` TEXT NOT NULL," +
		"`notes` TEXT NOT NULL," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"`updated_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)",
	"CREATE TABLE IF NOT EXISTS `element` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`uid` VARCHAR(256) NOT NULL UNIQUE," +
		"`project_id` INT NOT NULL," +
		"`scene_uid` VARCHAR(256) NOT NULL DEFAULT ''," +
		"`category` VARCHAR(128) NOT NULL," +
		"`name` TEXT NOT NULL," +
		"`quantity` INT NOT NULL DEFAULT 1," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"`updated_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)",
	"CREATE TABLE IF NOT EXISTS `shooting_day` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`uid` VARCHAR(256) NOT NULL UNIQUE," +
		"`project_id` INT NOT NULL," +
		"`day_number` INT NOT NULL," +
		"`shoot_date` VARCHAR(32) NOT NULL DEFAULT ''," +
		"`status` VARCHAR(64) NOT NULL DEFAULT 'PLANNED'," +
		"`notes` TEXT NOT NULL," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"`updated_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)",
	"CREATE TABLE IF NOT EXISTS `shooting_day_scene` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`shooting_day_id` INT NOT NULL," +
		"`scene_id` INT NOT NULL," +
		"`sort_order` INT NOT NULL DEFAULT 0," +
		"UNIQUE KEY `uq_day_scene` (`shooting_day_id`, `scene_id`))",
	"CREATE TABLE IF NOT EXISTS `agent_message` (" +
		"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"`project_id` INT NOT NULL," +
		"`user_id` INT NOT NULL," +
		"`role` VARCHAR(32) NOT NULL," +
		"`content` MEDIUMTEXT NOT NULL," +
		"`metadata` MEDIUMTEXT NOT NULL," +
		"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		"KEY `idx_agent_message_project_user` (`project_id`, `user_id`))",
}
