package recipe

import (
	"context"

	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/user"
	"foodgram/internal/logging"
)

// CatalogReader resolves ingredient and tag ids.
type CatalogReader interface {
	FindIngredients(ctx context.Context, ids []int64) ([]catalog.Ingredient, error)
	FindTags(ctx context.Context, ids []int64) ([]catalog.Tag, error)
}

// MembershipIndex lists the recipes a user has marked.
type MembershipIndex interface {
	FavoritedIDs(ctx context.Context, userID int64) ([]int64, error)
	CartIDs(ctx context.Context, userID int64) ([]int64, error)
}

// SubscriptionChecker reports whether a viewer follows a recipe author.
type SubscriptionChecker interface {
	IsSubscribed(ctx context.Context, subscriberID, authorID int64) (bool, error)
}

// ImageStore persists uploaded pictures and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, ownerID int64, raw string) (string, error)
	Remove(ctx context.Context, url string) error
}

type Service struct {
	repo    Repository
	catalog CatalogReader
	marks   MembershipIndex
	follows SubscriptionChecker
	images  ImageStore
}

// NewService wires the recipe service. marks and follows may be nil, in
// which case the corresponding flags are always false.
func NewService(repo Repository, catalog CatalogReader, marks MembershipIndex, follows SubscriptionChecker) *Service {
	return &Service{repo: repo, catalog: catalog, marks: marks, follows: follows}
}

// SetSubscriptions installs the checker after construction. The subscription
// service depends on this one for previews, so it is built second.
func (s *Service) SetSubscriptions(follows SubscriptionChecker) {
	s.follows = follows
}

// SetImages enables decoding of data URI images. Without a store the image
// field is kept verbatim.
func (s *Service) SetImages(images ImageStore) {
	s.images = images
}

func (s *Service) storeImage(ctx context.Context, userID int64, raw string) (string, error) {
	if s.images == nil || raw == "" {
		return raw, nil
	}
	return s.images.Save(ctx, userID, raw)
}

func (s *Service) dropImage(ctx context.Context, url string) {
	if s.images == nil || url == "" {
		return
	}
	if err := s.images.Remove(ctx, url); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("image", url).Msg("image cleanup failed")
	}
}

// Create stores a new recipe owned by userID.
func (s *Service) Create(ctx context.Context, userID int64, req WriteRequest) (*Recipe, error) {
	v, err := s.validate(ctx, &req)
	if err != nil {
		return nil, err
	}

	image, err := s.storeImage(ctx, userID, req.Image)
	if err != nil {
		return nil, err
	}

	rec := &Recipe{
		AuthorID:    userID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       image,
		Tags:        v.tags,
		Ingredients: v.links,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.dropImage(ctx, image)
		return nil, err
	}

	logging.Ctx(ctx).Info().Int64("recipe_id", rec.ID).Int64("user_id", userID).Msg("recipe created")
	return rec, nil
}

// Update replaces the recipe's fields, tag set and ingredient lines. Only
// the author may update; an empty image keeps the current one.
func (s *Service) Update(ctx context.Context, userID, recipeID int64, req WriteRequest) (*Recipe, error) {
	current, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if current.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	v, err := s.validate(ctx, &req)
	if err != nil {
		return nil, err
	}

	image, err := s.storeImage(ctx, userID, req.Image)
	if err != nil {
		return nil, err
	}
	if image == "" {
		image = current.Image
	}

	rec := &Recipe{
		ID:          recipeID,
		AuthorID:    current.AuthorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       image,
		Tags:        v.tags,
		Ingredients: v.links,
	}
	if err := s.repo.Replace(ctx, rec); err != nil {
		if image != current.Image {
			s.dropImage(ctx, image)
		}
		return nil, err
	}
	if image != current.Image {
		s.dropImage(ctx, current.Image)
	}

	logging.Ctx(ctx).Info().Int64("recipe_id", recipeID).Int64("user_id", userID).Msg("recipe replaced")
	return rec, nil
}

// Delete removes a recipe with its links, tag set and memberships. Only
// the author may delete it.
func (s *Service) Delete(ctx context.Context, userID, recipeID int64) error {
	rec, err := s.repo.GetOwnership(ctx, recipeID)
	if err != nil {
		return err
	}
	if rec.AuthorID != userID {
		return ErrNotAuthor
	}
	if err := s.repo.Delete(ctx, recipeID); err != nil {
		return err
	}
	s.dropImage(ctx, rec.Image)
	return nil
}

// Get returns the full representation of a recipe as seen by viewerID
// (0 for anonymous callers).
func (s *Service) Get(ctx context.Context, viewerID, recipeID int64) (*Response, error) {
	rec, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	out, err := s.represent(ctx, viewerID, []Recipe{*rec})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// List returns recipes newest first, narrowed by q. Favorite and cart
// filters are empty for anonymous viewers.
func (s *Service) List(ctx context.Context, viewerID int64, q ListQuery) ([]Response, error) {
	if q.Limit < 0 {
		return nil, ErrInvalidLimit
	}

	f := ListFilter{AuthorID: q.AuthorID, TagSlugs: q.Tags, Limit: q.Limit}
	if q.Favorited || q.InCart {
		ids, err := s.markedIDs(ctx, viewerID, q.Favorited, q.InCart)
		if err != nil {
			return nil, err
		}
		f.RestrictIDs = true
		f.IDs = ids
	}

	recipes, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.represent(ctx, viewerID, recipes)
}

// markedIDs intersects the requested membership sets of viewerID.
func (s *Service) markedIDs(ctx context.Context, viewerID int64, favorited, inCart bool) ([]int64, error) {
	if viewerID == 0 || s.marks == nil {
		return nil, nil
	}

	var sets [][]int64
	if favorited {
		ids, err := s.marks.FavoritedIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ids)
	}
	if inCart {
		ids, err := s.marks.CartIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ids)
	}

	result := sets[0]
	for _, other := range sets[1:] {
		keep := toSet(other)
		filtered := result[:0:0]
		for _, id := range result {
			if keep[id] {
				filtered = append(filtered, id)
			}
		}
		result = filtered
	}
	return result, nil
}

// Preview returns up to limit of the author's newest recipes.
func (s *Service) Preview(ctx context.Context, authorID int64, limit int) ([]ShortResponse, error) {
	recipes, err := s.repo.ListByAuthor(ctx, authorID, limit)
	if err != nil {
		return nil, err
	}
	return ToShortResponses(recipes), nil
}

// CountByAuthor counts every recipe authorID has published.
func (s *Service) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	return s.repo.CountByAuthor(ctx, authorID)
}

func (s *Service) represent(ctx context.Context, viewerID int64, recipes []Recipe) ([]Response, error) {
	favorites, cart := map[int64]bool{}, map[int64]bool{}
	if viewerID != 0 && s.marks != nil && len(recipes) > 0 {
		ids, err := s.marks.FavoritedIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		favorites = toSet(ids)

		ids, err = s.marks.CartIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		cart = toSet(ids)
	}

	following := map[int64]bool{}
	out := make([]Response, 0, len(recipes))
	for i := range recipes {
		rec := &recipes[i]

		subscribed, checked := following[rec.AuthorID]
		if !checked {
			if viewerID != 0 && s.follows != nil {
				var err error
				subscribed, err = s.follows.IsSubscribed(ctx, viewerID, rec.AuthorID)
				if err != nil {
					return nil, err
				}
			}
			following[rec.AuthorID] = subscribed
		}

		out = append(out, toResponse(rec, subscribed, favorites[rec.ID], cart[rec.ID]))
	}
	return out, nil
}

func toResponse(rec *Recipe, subscribed, favorited, inCart bool) Response {
	resp := Response{
		ID:               rec.ID,
		Tags:             rec.Tags,
		Ingredients:      make([]IngredientLine, 0, len(rec.Ingredients)),
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             rec.Name,
		Image:            rec.Image,
		Text:             rec.Text,
		CookingTime:      rec.CookingTime,
	}
	if resp.Tags == nil {
		resp.Tags = []catalog.Tag{}
	}
	if rec.Author != nil {
		resp.Author = user.ToResponse(rec.Author, subscribed)
	} else {
		resp.Author = user.Response{ID: rec.AuthorID, IsSubscribed: subscribed}
	}
	for _, link := range rec.Ingredients {
		line := IngredientLine{ID: link.IngredientID, Amount: link.Amount}
		if link.Ingredient != nil {
			line.Name = link.Ingredient.Name
			line.MeasurementUnit = link.Ingredient.MeasurementUnit
		}
		resp.Ingredients = append(resp.Ingredients, line)
	}
	return resp
}

func toSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
