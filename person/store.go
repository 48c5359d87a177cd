package person

import "context"

type Store interface {
	Create(ctx context.Context, p *Person) error
	Get(ctx context.Context, name string) (*Person, error)
	List(ctx context.Context) ([]*Person, error)
}
