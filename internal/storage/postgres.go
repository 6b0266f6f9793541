package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/habitquest/internal"
)

// PostgresStorage persists users and items in two tables (see
// migrations/0001_init.sql). Saves are upserts keyed by id.
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- ItemRepository ---

func (p *PostgresStorage) SaveItem(ctx context.Context, item *internal.Item) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO items (id, user_id, kind, name, category, description, priority, due_date,
			frequency, custom_days, is_done, last_completed_at, current_streak, best_streak,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			priority = EXCLUDED.priority,
			due_date = EXCLUDED.due_date,
			frequency = EXCLUDED.frequency,
			custom_days = EXCLUDED.custom_days,
			is_done = EXCLUDED.is_done,
			last_completed_at = EXCLUDED.last_completed_at,
			current_streak = EXCLUDED.current_streak,
			best_streak = EXCLUDED.best_streak,
			updated_at = EXCLUDED.updated_at`,
		item.ID, item.UserID, item.Kind, item.Name, item.Category, item.Description,
		item.Priority, item.DueDate, item.Frequency, item.CustomDays, item.IsDone,
		item.LastCompletedAt, item.CurrentStreak, item.BestStreak, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert item: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetItem(ctx context.Context, id string) (*internal.Item, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, user_id, kind, name, category, description, priority, due_date,
			frequency, custom_days, is_done, last_completed_at, current_streak, best_streak,
			created_at, updated_at
		FROM items WHERE id = $1`, id)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("storage: item %s: %w", id, internal.ErrNotFound)
		}
		p.logger.Errorf("failed to scan item: %v", err)
		return nil, err
	}
	return it, nil
}

func (p *PostgresStorage) ListItems(ctx context.Context, userID string) ([]internal.Item, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, user_id, kind, name, category, description, priority, due_date,
			frequency, custom_days, is_done, last_completed_at, current_streak, best_streak,
			created_at, updated_at
		FROM items WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		p.logger.Errorf("failed to query items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []internal.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			p.logger.Errorf("failed to scan item: %v", err)
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (p *PostgresStorage) DeleteItem(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete item: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("storage: item %s: %w", id, internal.ErrNotFound)
	}
	return nil
}

func scanItem(row pgx.Row) (*internal.Item, error) {
	var it internal.Item
	err := row.Scan(&it.ID, &it.UserID, &it.Kind, &it.Name, &it.Category, &it.Description,
		&it.Priority, &it.DueDate, &it.Frequency, &it.CustomDays, &it.IsDone,
		&it.LastCompletedAt, &it.CurrentStreak, &it.BestStreak, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// --- UserRepository ---

func (p *PostgresStorage) SaveUser(ctx context.Context, user *internal.User) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO users (id, token, name, points, level, global_streak, best_global_streak,
			last_completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			name = EXCLUDED.name,
			points = EXCLUDED.points,
			level = EXCLUDED.level,
			global_streak = EXCLUDED.global_streak,
			best_global_streak = EXCLUDED.best_global_streak,
			last_completed_at = EXCLUDED.last_completed_at`,
		user.ID, user.Token, user.Name, user.Points, user.Level, user.GlobalStreak,
		user.BestGlobalStreak, user.LastCompletedAt, user.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetUser(ctx context.Context, id string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, token, name, points, level, global_streak, best_global_streak,
			last_completed_at, created_at
		FROM users WHERE id = $1`, id)
	return p.scanUser(row, id)
}

func (p *PostgresStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, token, name, points, level, global_streak, best_global_streak,
			last_completed_at, created_at
		FROM users WHERE token = $1`, token)
	return p.scanUser(row, "by token")
}

func (p *PostgresStorage) ListTopUsers(ctx context.Context, limit int) ([]internal.User, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, token, name, points, level, global_streak, best_global_streak,
			last_completed_at, created_at
		FROM users ORDER BY points DESC, id LIMIT $1`, limit)
	if err != nil {
		p.logger.Errorf("failed to query top users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []internal.User
	for rows.Next() {
		var u internal.User
		if err := rows.Scan(&u.ID, &u.Token, &u.Name, &u.Points, &u.Level, &u.GlobalStreak,
			&u.BestGlobalStreak, &u.LastCompletedAt, &u.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (p *PostgresStorage) scanUser(row pgx.Row, ref string) (*internal.User, error) {
	var u internal.User
	err := row.Scan(&u.ID, &u.Token, &u.Name, &u.Points, &u.Level, &u.GlobalStreak,
		&u.BestGlobalStreak, &u.LastCompletedAt, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("storage: user %s: %w", ref, internal.ErrNotFound)
		}
		p.logger.Errorf("failed to scan user: %v", err)
		return nil, err
	}
	return &u, nil
}

// --- Compile-time assertions ---
var _ ItemRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)
