package supply

import "context"

type Store interface {
	Get(ctx context.Context, location string, year int) (*Entry, error)
	Upsert(ctx context.Context, e *Entry) error
	UpdateGiven(ctx context.Context, e *Entry) error
	Reset(ctx context.Context) error
}
