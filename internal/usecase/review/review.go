package review

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ShopLookup interface {
	GetByID(ctx context.Context, id uint) (*models.Shop, error)
}

// ======================================================
// CREATE
// ======================================================

type CreateInput struct {
	Actor   *authz.Actor
	ShopID  *uint // nil posts platform feedback
	Rating  int
	Comment string
}

type Create struct {
	repo  domain.Repository
	shops ShopLookup
	authz authz.Authorizer
	audit audit.Recorder
}

func NewCreate(repo domain.Repository, shops ShopLookup, authorizer authz.Authorizer, recorder audit.Recorder) *Create {
	return &Create{repo: repo, shops: shops, authz: authorizer, audit: recorder}
}

func (uc *Create) Execute(ctx context.Context, in CreateInput) (*models.Review, error) {
	if err := uc.authz.Authorize(ctx, in.Actor, authz.ReviewCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	if in.ShopID != nil {
		if _, err := uc.shops.GetByID(ctx, *in.ShopID); err != nil {
			return nil, err
		}
	}

	comment, err := domain.Validate(in.Rating, in.Comment)
	if err != nil {
		return nil, err
	}

	r := &models.Review{
		Rating:   in.Rating,
		Comment:  comment,
		AuthorID: in.Actor.ID,
		ShopID:   in.ShopID,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	metrics.ReviewsCreated.Inc()
	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &in.Actor.ID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &r.ID,
	})
	return r, nil
}

// ======================================================
// LIST
// ======================================================

type ShopReviews struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating *float64        `json:"averageRating,omitempty"`
	Total         int             `json:"total"`
}

type Queries struct {
	repo  domain.Repository
	shops ShopLookup
}

func NewQueries(repo domain.Repository, shops ShopLookup) *Queries {
	return &Queries{repo: repo, shops: shops}
}

func (q *Queries) ListShopReviews(ctx context.Context, shopID uint, includeRating bool) (*ShopReviews, error) {
	if _, err := q.shops.GetByID(ctx, shopID); err != nil {
		return nil, err
	}

	reviews, err := q.repo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	out := &ShopReviews{Reviews: reviews, Total: len(reviews)}
	if includeRating {
		avg := domain.Average(reviews)
		out.AverageRating = &avg
	}
	return out, nil
}

func (q *Queries) ListFeedback(ctx context.Context) ([]models.Review, error) {
	reviews, err := q.repo.ListFeedback(ctx)
	if reviews == nil && err == nil {
		reviews = []models.Review{}
	}
	return reviews, err
}
