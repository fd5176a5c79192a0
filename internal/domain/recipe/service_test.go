package recipe

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodgram/internal/database"
	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/user"
	"foodgram/internal/pkg/apperr"
)

type fakeMarks struct {
	favorites map[int64][]int64
	cart      map[int64][]int64
}

func (f *fakeMarks) FavoritedIDs(_ context.Context, userID int64) ([]int64, error) {
	return f.favorites[userID], nil
}

func (f *fakeMarks) CartIDs(_ context.Context, userID int64) ([]int64, error) {
	return f.cart[userID], nil
}

type fakeFollows map[[2]int64]bool

func (f fakeFollows) IsSubscribed(_ context.Context, subscriberID, authorID int64) (bool, error) {
	return f[[2]int64{subscriberID, authorID}], nil
}

type fixture struct {
	db      *gorm.DB
	svc     *Service
	marks   *fakeMarks
	follows fakeFollows
	author  *user.User
	other   *user.User
}

const (
	flourID int64 = 1
	sugarID int64 = 2
	eggID   int64 = 3

	breakfastID int64 = 1
	dinnerID    int64 = 2
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "recipes.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &catalog.Ingredient{}, &catalog.Tag{}, &Recipe{}, &RecipeIngredient{},
	))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)

	author := &user.User{Email: "author@example.com", Username: "author", FirstName: "A", LastName: "Uthor", PasswordHash: "x"}
	other := &user.User{Email: "other@example.com", Username: "other", FirstName: "O", LastName: "Ther", PasswordHash: "x"}
	require.NoError(t, db.Create(author).Error)
	require.NoError(t, db.Create(other).Error)

	require.NoError(t, db.Create(&[]catalog.Ingredient{
		{ID: flourID, Name: "Flour", MeasurementUnit: "g"},
		{ID: sugarID, Name: "Sugar", MeasurementUnit: "g"},
		{ID: eggID, Name: "Egg", MeasurementUnit: "pcs"},
	}).Error)
	require.NoError(t, db.Create(&[]catalog.Tag{
		{ID: breakfastID, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{ID: dinnerID, Name: "Dinner", Color: "#49B64E", Slug: "dinner"},
	}).Error)

	marks := &fakeMarks{favorites: map[int64][]int64{}, cart: map[int64][]int64{}}
	follows := fakeFollows{}
	svc := NewService(NewRepository(db), catalog.NewService(catalog.NewRepository(db)), marks, follows)

	return &fixture{db: db, svc: svc, marks: marks, follows: follows, author: author, other: other}
}

func validRequest() WriteRequest {
	return WriteRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Image:       "data:image/png;base64,AAAA",
		Tags:        []int64{breakfastID},
		Ingredients: []IngredientAmount{{ID: flourID, Amount: 2}, {ID: sugarID, Amount: 3}},
	}
}

func linkRows(t *testing.T, db *gorm.DB, recipeID int64) []RecipeIngredient {
	t.Helper()
	var links []RecipeIngredient
	require.NoError(t, db.Where("recipe_id = ?", recipeID).Order("id ASC").Find(&links).Error)
	return links
}

func tagIDs(t *testing.T, db *gorm.DB, recipeID int64) []int64 {
	t.Helper()
	var ids []int64
	require.NoError(t, db.Table("recipe_tags").Where("recipe_id = ?", recipeID).Order("tag_id").Pluck("tag_id", &ids).Error)
	return ids
}

func TestService_CreateStoresOneLinkPerIngredientInCatalogOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for name, ingredients := range map[string][]IngredientAmount{
		"catalog order":  {{ID: flourID, Amount: 2}, {ID: sugarID, Amount: 3}},
		"reversed order": {{ID: sugarID, Amount: 3}, {ID: flourID, Amount: 2}},
	} {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			req.Ingredients = ingredients

			rec, err := f.svc.Create(ctx, f.author.ID, req)
			require.NoError(t, err)
			assert.Equal(t, f.author.ID, rec.AuthorID)

			links := linkRows(t, f.db, rec.ID)
			require.Len(t, links, 2)
			assert.Equal(t, flourID, links[0].IngredientID)
			assert.Equal(t, int64(2), links[0].Amount)
			assert.Equal(t, sugarID, links[1].IngredientID)
			assert.Equal(t, int64(3), links[1].Amount)
			assert.Equal(t, []int64{breakfastID}, tagIDs(t, f.db, rec.ID))
		})
	}
}

func TestService_CreateRejectsDuplicateIngredientWhateverTheAmounts(t *testing.T) {
	f := newFixture(t)

	for _, amounts := range [][2]int64{{1, 5}, {5, 5}, {0, 1}, {-1, 0}} {
		req := validRequest()
		req.Ingredients = []IngredientAmount{{ID: flourID, Amount: amounts[0]}, {ID: flourID, Amount: amounts[1]}}

		_, err := f.svc.Create(context.Background(), f.author.ID, req)
		assert.ErrorIs(t, err, ErrDuplicateIngredient, "amounts %v", amounts)
	}

	var count int64
	require.NoError(t, f.db.Model(&Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestService_CreateAmountBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, amount := range []int64{0, -1, -100} {
		req := validRequest()
		req.Ingredients = []IngredientAmount{{ID: flourID, Amount: amount}}
		_, err := f.svc.Create(ctx, f.author.ID, req)
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %d", amount)
	}

	req := validRequest()
	req.Ingredients = []IngredientAmount{{ID: flourID, Amount: 1}}
	rec, err := f.svc.Create(ctx, f.author.ID, req)
	require.NoError(t, err)
	assert.Len(t, linkRows(t, f.db, rec.ID), 1)

	req = validRequest()
	req.Ingredients = []IngredientAmount{{ID: flourID, Amount: MaxAmount}}
	rec, err = f.svc.Create(ctx, f.author.ID, req)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt32), linkRows(t, f.db, rec.ID)[0].Amount)

	for _, amount := range []int64{MaxAmount + 1, math.MaxInt64} {
		req = validRequest()
		req.Ingredients = []IngredientAmount{{ID: flourID, Amount: amount}}
		_, err = f.svc.Create(ctx, f.author.ID, req)
		assert.ErrorIs(t, err, ErrAmountTooLarge, "amount %d", amount)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	}
}

func TestService_ValidationOrder(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name   string
		mutate func(*WriteRequest)
		want   error
	}{
		{
			name:   "no ingredients wins over everything",
			mutate: func(r *WriteRequest) { r.Ingredients = nil; r.Tags = nil; r.CookingTime = 0 },
			want:   ErrIngredientsRequired,
		},
		{
			name: "unknown ingredient before duplicate and amount",
			mutate: func(r *WriteRequest) {
				r.Ingredients = []IngredientAmount{{ID: flourID, Amount: 0}, {ID: flourID, Amount: 1}, {ID: 999, Amount: 1}}
			},
			want: catalog.ErrIngredientNotFound,
		},
		{
			name: "duplicate before amount",
			mutate: func(r *WriteRequest) {
				r.Ingredients = []IngredientAmount{{ID: eggID, Amount: 0}, {ID: eggID, Amount: 0}}
			},
			want: ErrDuplicateIngredient,
		},
		{
			name:   "amount before tags",
			mutate: func(r *WriteRequest) { r.Ingredients[1].Amount = 0; r.Tags = nil },
			want:   ErrInvalidAmount,
		},
		{
			name:   "tags required",
			mutate: func(r *WriteRequest) { r.Tags = []int64{}; r.CookingTime = 0 },
			want:   ErrTagsRequired,
		},
		{
			name:   "duplicate tag",
			mutate: func(r *WriteRequest) { r.Tags = []int64{breakfastID, breakfastID} },
			want:   ErrDuplicateTag,
		},
		{
			name:   "unknown tag",
			mutate: func(r *WriteRequest) { r.Tags = []int64{breakfastID, 77} },
			want:   ErrUnknownTag,
		},
		{
			name:   "cooking time before scalar fields",
			mutate: func(r *WriteRequest) { r.CookingTime = 0; r.Name = "" },
			want:   ErrInvalidCookingTime,
		},
		{
			name:   "negative cooking time",
			mutate: func(r *WriteRequest) { r.CookingTime = -5 },
			want:   ErrInvalidCookingTime,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := f.svc.Create(context.Background(), f.author.ID, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_UnknownIngredientIsNotFound(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Ingredients = []IngredientAmount{{ID: 404, Amount: 1}}

	_, err := f.svc.Create(context.Background(), f.author.ID, req)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestService_ScalarFieldsValidated(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Name = ""
	_, err := f.svc.Create(context.Background(), f.author.ID, req)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, "name", appErr.Field)

	req = validRequest()
	req.Text = ""
	_, err = f.svc.Create(context.Background(), f.author.ID, req)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "text", appErr.Field)
}

func TestService_UpdateReplacesTagsAndIngredients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest()
	req.Tags = []int64{breakfastID, dinnerID}
	rec, err := f.svc.Create(ctx, f.author.ID, req)
	require.NoError(t, err)

	upd := validRequest()
	upd.Name = "Omelette"
	upd.Image = ""
	upd.Tags = []int64{dinnerID}
	upd.Ingredients = []IngredientAmount{{ID: eggID, Amount: 3}}
	_, err = f.svc.Update(ctx, f.author.ID, rec.ID, upd)
	require.NoError(t, err)

	links := linkRows(t, f.db, rec.ID)
	require.Len(t, links, 1)
	assert.Equal(t, eggID, links[0].IngredientID)
	assert.Equal(t, int64(3), links[0].Amount)
	assert.Equal(t, []int64{dinnerID}, tagIDs(t, f.db, rec.ID))

	got, err := f.svc.Get(ctx, f.author.ID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Omelette", got.Name)
	assert.Equal(t, req.Image, got.Image, "empty image keeps the stored one")
}

func TestService_UpdateByNonAuthorIsForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Create(ctx, f.author.ID, validRequest())
	require.NoError(t, err)

	upd := validRequest()
	upd.Ingredients = []IngredientAmount{{ID: eggID, Amount: 1}}
	_, err = f.svc.Update(ctx, f.other.ID, rec.ID, upd)
	assert.ErrorIs(t, err, ErrNotAuthor)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	assert.Len(t, linkRows(t, f.db, rec.ID), 2)

	_, err = f.svc.Update(ctx, f.author.ID, rec.ID+100, upd)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestService_InvalidUpdateLeavesRecipeUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Create(ctx, f.author.ID, validRequest())
	require.NoError(t, err)

	upd := validRequest()
	upd.Ingredients = []IngredientAmount{{ID: eggID, Amount: 1}}
	upd.Tags = []int64{dinnerID, 55}
	_, err = f.svc.Update(ctx, f.author.ID, rec.ID, upd)
	assert.ErrorIs(t, err, ErrUnknownTag)

	links := linkRows(t, f.db, rec.ID)
	require.Len(t, links, 2)
	assert.Equal(t, flourID, links[0].IngredientID)
	assert.Equal(t, []int64{breakfastID}, tagIDs(t, f.db, rec.ID))
}

func TestService_DeleteOnlyByAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Create(ctx, f.author.ID, validRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.other.ID, rec.ID), ErrNotAuthor)
	require.NoError(t, f.svc.Delete(ctx, f.author.ID, rec.ID))

	assert.Empty(t, linkRows(t, f.db, rec.ID))
	assert.Empty(t, tagIDs(t, f.db, rec.ID))
	_, err = f.svc.Get(ctx, 0, rec.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, f.author.ID, rec.ID), ErrRecipeNotFound)
}

func TestService_GetRepresentation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest()
	req.Ingredients = []IngredientAmount{{ID: sugarID, Amount: 50}, {ID: flourID, Amount: 200}}
	rec, err := f.svc.Create(ctx, f.author.ID, req)
	require.NoError(t, err)

	f.marks.favorites[f.other.ID] = []int64{rec.ID}
	f.follows[[2]int64{f.other.ID, f.author.ID}] = true

	got, err := f.svc.Get(ctx, f.other.ID, rec.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorited)
	assert.False(t, got.IsInShoppingCart)
	assert.True(t, got.Author.IsSubscribed)
	assert.Equal(t, "author", got.Author.Username)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "breakfast", got.Tags[0].Slug)
	assert.Equal(t, []IngredientLine{
		{ID: flourID, Name: "Flour", MeasurementUnit: "g", Amount: 200},
		{ID: sugarID, Name: "Sugar", MeasurementUnit: "g", Amount: 50},
	}, got.Ingredients)

	anon, err := f.svc.Get(ctx, 0, rec.ID)
	require.NoError(t, err)
	assert.False(t, anon.IsFavorited)
	assert.False(t, anon.Author.IsSubscribed)
}

func TestService_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.author.ID, validRequest())
	require.NoError(t, err)

	dinner := validRequest()
	dinner.Name = "Stew"
	dinner.Tags = []int64{dinnerID}
	second, err := f.svc.Create(ctx, f.other.ID, dinner)
	require.NoError(t, err)

	names := func(list []Response) []string {
		out := make([]string, 0, len(list))
		for _, r := range list {
			out = append(out, r.Name)
		}
		return out
	}

	all, err := f.svc.List(ctx, 0, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Stew", "Pancakes"}, names(all), "newest first")

	byAuthor, err := f.svc.List(ctx, 0, ListQuery{AuthorID: f.author.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pancakes"}, names(byAuthor))

	byTag, err := f.svc.List(ctx, 0, ListQuery{Tags: []string{"dinner"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Stew"}, names(byTag))

	anyTag, err := f.svc.List(ctx, 0, ListQuery{Tags: []string{"dinner", "breakfast"}})
	require.NoError(t, err)
	assert.Len(t, anyTag, 2)

	f.marks.favorites[f.author.ID] = []int64{second.ID}
	f.marks.cart[f.author.ID] = []int64{first.ID, second.ID}

	favorites, err := f.svc.List(ctx, f.author.ID, ListQuery{Favorited: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Stew"}, names(favorites))
	assert.True(t, favorites[0].IsFavorited)
	assert.True(t, favorites[0].IsInShoppingCart)

	both, err := f.svc.List(ctx, f.author.ID, ListQuery{Favorited: true, InCart: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Stew"}, names(both))

	anon, err := f.svc.List(ctx, 0, ListQuery{InCart: true})
	require.NoError(t, err)
	assert.Empty(t, anon)

	limited, err := f.svc.List(ctx, 0, ListQuery{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Stew"}, names(limited))

	_, err = f.svc.List(ctx, 0, ListQuery{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestService_PreviewAndCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		req := validRequest()
		req.Name = name
		_, err := f.svc.Create(ctx, f.author.ID, req)
		require.NoError(t, err)
	}

	preview, err := f.svc.Preview(ctx, f.author.ID, 2)
	require.NoError(t, err)
	require.Len(t, preview, 2)
	assert.Equal(t, "Three", preview[0].Name)
	assert.Equal(t, "Two", preview[1].Name)

	none, err := f.svc.Preview(ctx, f.author.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	count, err := f.svc.CountByAuthor(ctx, f.author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

type fakeImages struct {
	saved   []string
	removed []string
}

func (f *fakeImages) Save(_ context.Context, ownerID int64, raw string) (string, error) {
	if !strings.HasPrefix(raw, "data:") {
		return raw, nil
	}
	url := fmt.Sprintf("/media/recipes/images/%d-%d.png", ownerID, len(f.saved)+1)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeImages) Remove(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

func TestService_ImagesAreStoredAndReplaced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	images := &fakeImages{}
	f.svc.SetImages(images)

	rec, err := f.svc.Create(ctx, f.author.ID, validRequest())
	require.NoError(t, err)
	first := rec.Image
	assert.Equal(t, []string{first}, images.saved)

	// empty image keeps the stored file
	req := validRequest()
	req.Image = ""
	updated, err := f.svc.Update(ctx, f.author.ID, rec.ID, req)
	require.NoError(t, err)
	assert.Equal(t, first, updated.Image)
	assert.Empty(t, images.removed)

	updated, err = f.svc.Update(ctx, f.author.ID, rec.ID, validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first, updated.Image)
	assert.Equal(t, []string{first}, images.removed)

	require.NoError(t, f.svc.Delete(ctx, f.author.ID, rec.ID))
	assert.Equal(t, []string{first, updated.Image}, images.removed)
}
