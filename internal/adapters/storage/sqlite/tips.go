package sqlite

import (
	"context"
	"fmt"

	"github.com/finbits/tips-service/internal/domain"
)

// Create durably inserts a new tip and sets its store-assigned id.
func (db *DB) Create(ctx context.Context, tip *domain.Tip) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO tips (text) VALUES (?)`, tip.Text)
	if err != nil {
		return fmt.Errorf("inserting tip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted tip id: %w", err)
	}

	tip.ID = id

	return nil
}

// List returns all tips in ascending creation order.
func (db *DB) List(ctx context.Context) ([]domain.Tip, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, text FROM tips ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying tips: %w", err)
	}
	defer rows.Close()

	tips := make([]domain.Tip, 0)

	for rows.Next() {
		var tip domain.Tip
		if err := rows.Scan(&tip.ID, &tip.Text); err != nil {
			return nil, fmt.Errorf("scanning tip row: %w", err)
		}

		tips = append(tips, tip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tip rows: %w", err)
	}

	return tips, nil
}
