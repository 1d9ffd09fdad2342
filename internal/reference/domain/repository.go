package domain

import "context"

type Repository interface {
	ListRegions(ctx context.Context) ([]Region, error)
	RegionCodes(ctx context.Context) (map[string]struct{}, error)
}
