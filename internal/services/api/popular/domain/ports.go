package domain

import "context"

// ServicePort is the popular queries service contract
type ServicePort interface {
	Popular(ctx context.Context, in PopularInput) (PopularResult, error)
}
