package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/imaging"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/storage"
)

var ErrStorageDisabled = httperr.Internal("storage_disabled", errors.New("object storage is not configured"))

type UploadImage struct {
	repo     domain.Repository
	authz    authz.Authorizer
	audit    audit.Recorder
	uploader storage.Uploader
}

// NewUploadImage accepts a nil uploader; every call then fails with ErrStorageDisabled.
func NewUploadImage(
	repo domain.Repository,
	authorizer authz.Authorizer,
	recorder audit.Recorder,
	uploader storage.Uploader,
) *UploadImage {
	return &UploadImage{repo: repo, authz: authorizer, audit: recorder, uploader: uploader}
}

func (uc *UploadImage) Execute(ctx context.Context, actor *authz.Actor, shopID uint, data []byte) (*models.Shop, error) {
	s, err := authorizeManage(ctx, uc.repo, uc.authz, actor, shopID)
	if err != nil {
		return nil, err
	}
	if uc.uploader == nil {
		return nil, ErrStorageDisabled
	}

	out, err := imaging.ToWebP(data)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("shops/%d/%s.webp", s.ID, uuid.NewString())
	url, err := uc.uploader.Put(ctx, key, imaging.ContentType, out)
	if err != nil {
		return nil, httperr.Internal("upload_failed", err)
	}

	s.ImageURL = url
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &s.ID,
		UserID:   &actor.ID,
		Action:   "shop_image_updated",
		Entity:   "shop",
		EntityID: &s.ID,
		Metadata: map[string]string{"key": key},
	})
	return s, nil
}
