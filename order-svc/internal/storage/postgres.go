package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"harveys-cafe/order-svc/internal/domain"
	"harveys-cafe/order-svc/internal/service"
)

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var (
	_ service.MenuRepository  = (*PostgresRepository)(nil)
	_ service.OrderRepository = (*PostgresRepository)(nil)
	_ service.Transactor      = (*PostgresRepository)(nil)
	_ service.TxStore         = (*txStore)(nil)
)

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price JSONB NOT NULL DEFAULT '[]',
			size JSONB NOT NULL DEFAULT '[]',
			type TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			available_count INTEGER NOT NULL DEFAULT 12 CHECK (available_count >= 0),
			daily_cap INTEGER NOT NULL DEFAULT 12,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS menu_items_name_idx ON menu_items (LOWER(TRIM(name)))`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id TEXT PRIMARY KEY,
			invoice_number TEXT NOT NULL UNIQUE,
			order_id TEXT NOT NULL,
			payment_id TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL,
			user_details JSONB NOT NULL,
			items JSONB NOT NULL,
			subtotal NUMERIC(12,2) NOT NULL,
			advance_amount NUMERIC(12,2) NOT NULL,
			remaining_amount NUMERIC(12,2) NOT NULL,
			total_amount NUMERIC(12,2) NOT NULL,
			visit_time TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			restaurant_details JSONB NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS invoices_created_at_idx ON invoices (created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY category ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	return scanMenuItem(r.DB.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id))
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	price, err := encodeStrings(item.Price)
	if err != nil {
		return err
	}
	size, err := encodeStrings(item.Size)
	if err != nil {
		return err
	}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (id, name, category, description, price, size, type, image, available_count, daily_cap)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		item.ID, item.Name, item.Category, item.Description, price, size, item.Type, item.Image, item.AvailableCount, item.DailyCap,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	price, err := encodeStrings(item.Price)
	if err != nil {
		return err
	}
	size, err := encodeStrings(item.Size)
	if err != nil {
		return err
	}
	updated, err := scanMenuItem(r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name=$1, category=$2, description=$3, price=$4, size=$5, type=$6, image=$7, available_count=$8, updated_at=NOW()
		WHERE id=$9
		RETURNING `+menuColumns,
		item.Name, item.Category, item.Description, price, size, item.Type, item.Image, item.AvailableCount, item.ID))
	if err != nil {
		return err
	}
	*item = *updated
	return nil
}

func (r *PostgresRepository) SetAvailableCount(ctx context.Context, id string, count int) error {
	return setAvailableCount(ctx, r.DB, id, count)
}

// ResetAvailableCounts sets every item's remaining count and returns how many rows changed.
func (r *PostgresRepository) ResetAvailableCounts(ctx context.Context, count int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `UPDATE menu_items SET available_count = $1, updated_at = NOW()`, count)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(invoice_number ILIKE $%d OR user_details->>'name' ILIKE $%d OR user_details->>'email' ILIKE $%d)", n, n, n))
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
}

func (r *PostgresRepository) OrderStats(ctx context.Context) (*domain.OrderStats, error) {
	var stats domain.OrderStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status NOT IN ('pending', 'cancelled')),
			COALESCE(SUM(advance_amount) FILTER (WHERE status IN ('approved', 'confirmed', 'completed')), 0)
		FROM invoices`).
		Scan(&stats.Pending, &stats.Approved, &stats.TotalSales, &stats.Revenue)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *PostgresRepository) WithinTx(ctx context.Context, fn func(service.TxStore) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&txStore{q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

type txStore struct {
	q queryer
}

func (s *txStore) FindMenuItemByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	return scanMenuItem(s.q.QueryRowContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = $1 FOR UPDATE`, id))
}

// FindMenuItemByName matches case-insensitively on the trimmed name. With
// duplicate names the oldest record wins.
func (s *txStore) FindMenuItemByName(ctx context.Context, name string) (*domain.MenuItem, error) {
	return scanMenuItem(s.q.QueryRowContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE LOWER(TRIM(name)) = $1 ORDER BY created_at ASC LIMIT 1 FOR UPDATE`,
		domain.NormalizeName(name)))
}

func (s *txStore) SetAvailableCount(ctx context.Context, id string, count int) error {
	return setAvailableCount(ctx, s.q, id, count)
}

func (s *txStore) InsertOrder(ctx context.Context, order *domain.Order) error {
	row, err := toInvoiceRow(order)
	if err != nil {
		return fmt.Errorf("encode invoice: %w", err)
	}
	placeholders := make([]string, len(orderFields))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	_, err = s.q.ExecContext(ctx,
		`INSERT INTO invoices (`+invoiceColumns+`) VALUES (`+strings.Join(placeholders, ", ")+`)`,
		row.values()...)
	return err
}

func (s *txStore) LockOrder(ctx context.Context, id string) (*domain.Order, error) {
	return scanOrder(s.q.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id))
}

func (s *txStore) UpdateOrderStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	result, err := s.q.ExecContext(ctx,
		`UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3`, string(status), updatedAt, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func setAvailableCount(ctx context.Context, q queryer, id string, count int) error {
	result, err := q.ExecContext(ctx,
		`UPDATE menu_items SET available_count = $1, updated_at = NOW() WHERE id = $2`, count, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
