package analytichttp

import (
	"context"

	"golang.org/x/sync/singleflight"
)

var dashboardGroup singleflight.Group

func singleflightDashboard(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error, bool) {
	return dashboardGroup.Do(key, func() (interface{}, error) {
		return fn(ctx)
	})
}
