package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// ListInventory возвращает все товары, развёрнутые вместе с именем категории
// (LEFT JOIN: товар без категории получает сентинел "none"),
// отсортированные по имени товара по возрастанию.
func (p *ProductRepo) ListInventory(ctx context.Context) ([]usecase.InventoryRow, error) {
	query := `
		SELECT pr.id, pr.name, pr.quantity, pr.price, cat.name
		FROM products pr
		LEFT JOIN categories cat ON pr.category_id = cat.id
		ORDER BY pr.name ASC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.InventoryRow, 0)
	for rows.Next() {
		var (
			row          usecase.InventoryRow
			categoryName sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.Name, &row.Quantity, &row.Price, &categoryName); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if categoryName.Valid {
			row.CategoryName = categoryName.String
		} else {
			row.CategoryName = domain.CategoryNone
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetByID возвращает товар по идентификатору внутри текущей транзакции.
// Возвращает e.ErrProductNotFound, если записи нет.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, name, quantity, price, category_id, created_at, updated_at
		FROM products
		WHERE id = $1;
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.Name, &model.Quantity, &model.Price,
			&model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Insert создаёт новый товар и возвращает запись с присвоенным идентификатором.
func (p *ProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (name, quantity, price, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, quantity, price, category_id, created_at, updated_at;
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query, product.Name, product.Quantity, product.Price, product.CategoryID).
		Scan(
			&model.ID, &model.Name, &model.Quantity, &model.Price,
			&model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// UpdateQuantity выставляет новое количество товара.
// Количество валидируется на уровне usecase и не может быть отрицательным.
func (p *ProductRepo) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2;
	`

	result, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

// Delete безвозвратно удаляет товар.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `DELETE FROM products WHERE id = $1;`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}
