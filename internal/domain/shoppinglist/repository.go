package shoppinglist

import (
	"context"

	"github.com/jmoiron/sqlx"

	"foodgram/internal/domain/membership"
)

type Repository interface {
	// CartLines returns every ingredient line of every recipe in the
	// user's cart, with the catalog name and unit of each ingredient.
	CartLines(ctx context.Context, userID int64) ([]Line, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const cartLinesQuery = `
	SELECT ri.recipe_id, ri.ingredient_id, i.name, i.measurement_unit, ri.amount
	FROM recipe_memberships m
	JOIN recipe_ingredients ri ON ri.recipe_id = m.recipe_id
	JOIN ingredients i ON i.id = ri.ingredient_id
	WHERE m.user_id = ? AND m.kind = ?
	ORDER BY ri.ingredient_id, ri.recipe_id
`

func (r *repository) CartLines(ctx context.Context, userID int64) ([]Line, error) {
	var lines []Line
	query := r.db.Rebind(cartLinesQuery)
	if err := r.db.SelectContext(ctx, &lines, query, userID, string(membership.KindCart)); err != nil {
		return nil, err
	}
	return lines, nil
}
