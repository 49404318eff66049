package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// CacheStats reports result cache occupancy and distributed cache health.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	res, err := r.buildResources(ctx, config)
	if err != nil {
		return err
	}
	defer res.close()

	length, capacity := res.engine.ResultCacheStats()

	redisStatus := "not configured"
	if res.redis != nil {
		redisStatus = "ok"
		if err := res.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unavailable"
		}
	}

	return r.writeJSON(map[string]any{
		"result_cache": map[string]int{
			"length":   length,
			"capacity": capacity,
		},
		"redis": redisStatus,
	}, true)
}
