package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// GetStats reports per-day bookings against capacity. It never rejects bookings.
type GetStats struct {
	repo       domain.Repository
	fixedStaff bool
}

func NewGetStats(repo domain.Repository, fixedStaff bool) *GetStats {
	return &GetStats{repo: repo, fixedStaff: fixedStaff}
}

func (uc *GetStats) Execute(
	ctx context.Context,
	shopID uint,
	startDate string,
	endDate string,
) ([]domain.DayStat, error) {

	shop, err := uc.repo.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	r, err := domain.ParseRange(startDate, endDate, timezone.Location(shop.Timezone))
	if err != nil {
		return nil, err
	}

	var staff int64
	if !uc.fixedStaff {
		if staff, err = uc.repo.CountStaff(ctx, shop.ID); err != nil {
			return nil, err
		}
	}

	counts, err := uc.repo.CountByDay(
		ctx,
		shop.ID,
		r.Start.Format(domain.DateLayout),
		r.End.Format(domain.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	return domain.BuildStats(r, counts, domain.Capacity(staff, uc.fixedStaff)), nil
}
