package apiclient

import (
	"context"

	"github.com/jrsteele09/go-auth-console/reqlogs"
)

type LogService struct {
	c *Client
}

var _ reqlogs.Repo = (*LogService)(nil)

func (s *LogService) List(ctx context.Context, filter reqlogs.Filter) ([]*reqlogs.RequestLog, error) {
	return list[reqlogs.RequestLog](ctx, s.c, s.c.paths.Logs(filter))
}

func (s *LogService) Get(ctx context.Context, id string) (*reqlogs.RequestLog, error) {
	if err := requireID("log", id); err != nil {
		return nil, err
	}
	return get[reqlogs.RequestLog](ctx, s.c, s.c.paths.Log(id))
}

func (s *LogService) Stats(ctx context.Context, period string) (*reqlogs.Stats, error) {
	if err := reqlogs.ValidatePeriod(period); err != nil {
		return nil, err
	}
	return get[reqlogs.Stats](ctx, s.c, s.c.paths.LogStats(period))
}
