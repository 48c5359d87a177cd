package service

import "context"

type Store interface {
	Append(ctx context.Context, r *Record) error
	List(ctx context.Context, opts ListOpts) ([]*Record, error)
}
