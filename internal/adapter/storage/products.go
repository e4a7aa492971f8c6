package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/VatsalRaj481/Arise/internal/core/domain"
	"github.com/VatsalRaj481/Arise/internal/core/port"
)

var _ port.ProductStore = (*ProductsRepository)(nil)

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

// Save inserts a product with a zero ID and assigns its identifier,
// otherwise it overwrites the stored fields of that ID. The returned price
// is the stored one, rounded to cents.
func (r ProductsRepository) Save(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.Save"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if p.ID == 0 {
		return r.insert(ctx, p)
	}
	return r.update(ctx, p)
}

func (r ProductsRepository) insert(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.insert"

	query := `
		INSERT INTO products (name, description, price, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, price;`

	err := r.sqldb.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.ImageURL,
	).Scan(&p.ID, &p.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) update(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.update"

	query := `
		UPDATE products SET
			name = $1,
			description = $2,
			price = $3,
			image_url = $4,
			updated_at = now()
		WHERE id = $5
		RETURNING price;`

	err := r.sqldb.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.ImageURL, p.ID,
	).Scan(&p.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: id %d: %w", op, p.ID, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) FindByID(
	ctx context.Context, id int64,
) (domain.Product, error) {
	const op = "ProductsRepository.FindByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, name, description, price, image_url
		FROM products
		WHERE id = $1;`

	var p domain.Product
	err := r.sqldb.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductsRepository.FindAll"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, name, description, price, image_url
		FROM products
		ORDER BY id ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "err", err)
		}
	}()

	ps := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const op = "ProductsRepository.ExistsByID"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1);`

	var exists bool
	if err := r.sqldb.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

func (r ProductsRepository) DeleteByID(ctx context.Context, id int64) error {
	const op = "ProductsRepository.DeleteByID"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sqldb.ExecContext(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.checkAffected(res); err != nil {
		return fmt.Errorf("%s: id %d: %w", op, id, err)
	}
	return nil
}

func (ProductsRepository) checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
