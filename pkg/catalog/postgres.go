package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/esil-events/chatbot/pkg/models"
)

// PostgresStore searches the catalog over a direct Postgres connection.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the database and verifies connectivity.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

const searchQuery = `
SELECT id, name, reference, category, subcategory, COALESCE(subsubcategory, ''),
       description, price_ht, price_ttc, stock, available, images, created_at
FROM products
WHERE name ILIKE '%' || $1 || '%'
ORDER BY created_at DESC`

// Search returns products whose name contains the query, newest first.
func (s *PostgresStore) Search(ctx context.Context, query string) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, searchQuery, query)
	if err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var images pq.StringArray
		if err := rows.Scan(&p.ID, &p.Name, &p.Reference, &p.Category,
			&p.SubCategory, &p.SubSubCategory, &p.Description,
			&p.PriceHT, &p.PriceTTC, &p.Stock, &p.Available,
			&images, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("catalog scan: %w", err)
		}
		p.Images = images
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog rows: %w", err)
	}
	return products, nil
}

// Close releases the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
