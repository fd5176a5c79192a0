package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/domain/catalog"
)

func TestRepository_ReplaceRollsBackOnFailedLinkInsert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Create(ctx, f.author.ID, validRequest())
	require.NoError(t, err)

	repo := NewRepository(f.db)
	broken := &Recipe{
		ID:          rec.ID,
		Name:        "Broken",
		Text:        "x",
		CookingTime: 1,
		Tags:        []catalog.Tag{{ID: dinnerID, Name: "Dinner", Color: "#49B64E", Slug: "dinner"}},
		// ingredient 999 violates the link's foreign key
		Ingredients: []RecipeIngredient{{IngredientID: eggID, Amount: 1}, {IngredientID: 999, Amount: 1}},
	}
	require.Error(t, repo.Replace(ctx, broken))

	stored, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", stored.Name)
	require.Len(t, stored.Tags, 1)
	assert.Equal(t, breakfastID, stored.Tags[0].ID)
	require.Len(t, stored.Ingredients, 2)
	assert.Equal(t, flourID, stored.Ingredients[0].IngredientID)
	assert.Equal(t, sugarID, stored.Ingredients[1].IngredientID)
}

func TestRepository_LinkPairIsUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Create(ctx, f.author.ID, validRequest())
	require.NoError(t, err)

	err = f.db.Create(&RecipeIngredient{RecipeID: rec.ID, IngredientID: flourID, Amount: 9}).Error
	assert.Error(t, err)
}

func TestRepository_IngredientInUseCannotBeDeleted(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.author.ID, validRequest())
	require.NoError(t, err)

	assert.Error(t, f.db.Delete(&catalog.Ingredient{}, flourID).Error)
	assert.NoError(t, f.db.Delete(&catalog.Ingredient{}, eggID).Error)
}

func TestRepository_ReplaceSwapsTagSetRepeatedly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Create(ctx, f.author.ID, validRequest())
	require.NoError(t, err)

	repo := NewRepository(f.db)
	breakfast := catalog.Tag{ID: breakfastID, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}
	dinner := catalog.Tag{ID: dinnerID, Name: "Dinner", Color: "#49B64E", Slug: "dinner"}

	for _, tags := range [][]catalog.Tag{{dinner}, {breakfast, dinner}, {breakfast}} {
		err := repo.Replace(ctx, &Recipe{
			ID:          rec.ID,
			Name:        "Pancakes",
			Text:        "Mix and fry.",
			CookingTime: 20,
			Tags:        tags,
			Ingredients: []RecipeIngredient{{IngredientID: eggID, Amount: 2}},
		})
		require.NoError(t, err)

		want := make([]int64, 0, len(tags))
		for _, tag := range tags {
			want = append(want, tag.ID)
		}
		assert.Equal(t, want, tagIDs(t, f.db, rec.ID))
		links := linkRows(t, f.db, rec.ID)
		require.Len(t, links, 1)
		assert.Equal(t, eggID, links[0].IngredientID)
	}

	var tagCount int64
	require.NoError(t, f.db.Model(&catalog.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(2), tagCount, "replace must not create tag rows")
}
