package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.HabitRepository = (*PostgresHabitRepository)(nil)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type habitRow struct {
	ID          string        `db:"id"`
	UserID      string        `db:"user_id"`
	Name        string        `db:"name"`
	Description string        `db:"description"`
	Category    string        `db:"category"`
	Difficulty  string        `db:"difficulty"`
	TargetValue int           `db:"target_value"`
	Frequency   string        `db:"frequency"`
	Weekdays    pq.Int64Array `db:"weekdays"`
	MonthDays   pq.Int64Array `db:"month_days"`
	Interval    int           `db:"interval_days"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

type completionRow struct {
	HabitID string `db:"habit_id"`
	domain.Completion
}

const habitColumns = `id, user_id, name, description, category, difficulty, target_value,
	frequency, weekdays, month_days, interval_days, created_at, updated_at`

func toInts(a pq.Int64Array) []int {
	if len(a) == 0 {
		return nil
	}
	out := make([]int, len(a))
	for i, v := range a {
		out[i] = int(v)
	}
	return out
}

func toInt64s(a []int) pq.Int64Array {
	out := make(pq.Int64Array, len(a))
	for i, v := range a {
		out[i] = int64(v)
	}
	return out
}

func (row habitRow) toDomain() *domain.Habit {
	return &domain.Habit{
		ID:          row.ID,
		UserID:      row.UserID,
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		Difficulty:  row.Difficulty,
		TargetValue: row.TargetValue,
		RecurrenceRule: domain.RecurrenceRule{
			Frequency: domain.Frequency(row.Frequency),
			Weekdays:  toInts(row.Weekdays),
			MonthDays: toInts(row.MonthDays),
			Interval:  row.Interval,
		},
		Completions: []domain.Completion{},
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}

// pgCode extracts the SQLSTATE from either driver's error type.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
        INSERT INTO habits (` + habitColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.Name, h.Description, h.Category, h.Difficulty, h.TargetValue,
		string(h.Frequency), toInt64s(h.Weekdays), toInt64s(h.MonthDays), h.Interval,
		h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("failed to insert habit: %w", domain.ErrUserNotFound)
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var row habitRow
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	habits := []*domain.Habit{row.toDomain()}
	if err := r.attachCompletions(ctx, habits); err != nil {
		return nil, err
	}

	return habits[0], nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	rows := []habitRow{}
	query := `
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = $1
        ORDER BY created_at ASC, id ASC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	habits := make([]*domain.Habit, 0, len(rows))
	for _, row := range rows {
		habits = append(habits, row.toDomain())
	}

	if err := r.attachCompletions(ctx, habits); err != nil {
		return nil, err
	}

	return habits, nil
}

// attachCompletions loads the completions of all habits with a single query.
func (r *PostgresHabitRepository) attachCompletions(ctx context.Context, habits []*domain.Habit) error {
	if len(habits) == 0 {
		return nil
	}

	ids := make([]string, len(habits))
	byID := make(map[string]*domain.Habit, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
		byID[h.ID] = h
	}

	rows := []completionRow{}
	query := `
        SELECT habit_id, completion_date, recorded_at, value
        FROM habit_completions
        WHERE habit_id = ANY($1)
        ORDER BY completion_date ASC`

	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("completion query error: %w", err)
	}

	for _, row := range rows {
		if h, ok := byID[row.HabitID]; ok {
			row.Timestamp = row.Timestamp.UTC()
			h.Completions = append(h.Completions, row.Completion)
		}
	}

	return nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
        UPDATE habits SET
            name=$1, description=$2, category=$3, difficulty=$4, target_value=$5,
            frequency=$6, weekdays=$7, month_days=$8, interval_days=$9,
            created_at=$10, updated_at=$11
        WHERE id=$12`

	res, err := r.db.ExecContext(ctx, query,
		h.Name, h.Description, h.Category, h.Difficulty, h.TargetValue,
		string(h.Frequency), toInt64s(h.Weekdays), toInt64s(h.MonthDays), h.Interval,
		h.CreatedAt, h.UpdatedAt,
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	return expectOneRow(res, domain.ErrHabitNotFound)
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	return expectOneRow(res, domain.ErrHabitNotFound)
}

func (r *PostgresHabitRepository) AddCompletion(ctx context.Context, habitID string, c domain.Completion) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO habit_completions (habit_id, completion_date, recorded_at, value)
        VALUES (:habit_id, :completion_date, :recorded_at, :value)`,
		completionRow{HabitID: habitID, Completion: c},
	)
	if err != nil {
		switch pgCode(err) {
		case pgUniqueViolation:
			return domain.ErrCompletionExists
		case pgForeignKeyViolation:
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("insert completion failed: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE habits SET updated_at = $1 WHERE id = $2`, c.Timestamp, habitID); err != nil {
		return fmt.Errorf("touch habit failed: %w", err)
	}

	return tx.Commit()
}

func (r *PostgresHabitRepository) RemoveCompletion(ctx context.Context, habitID string, date domain.Date) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM habit_completions WHERE habit_id = $1 AND completion_date = $2`,
		habitID, date,
	)
	if err != nil {
		return fmt.Errorf("delete completion failed: %w", err)
	}
	if err := expectOneRow(res, domain.ErrCompletionNotFound); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE habits SET updated_at = NOW() WHERE id = $1`, habitID); err != nil {
		return fmt.Errorf("touch habit failed: %w", err)
	}

	return tx.Commit()
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
