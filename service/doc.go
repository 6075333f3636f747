// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package service holds the polygon business operations used by the HTTP layer.

	svc := service.NewPolygonService(repo, cfg.Latency)
	polygons, err := svc.GetPolygons(ctx)

Each operation optionally waits for the configured latency first (useful for
exercising optimistic updates in the editor), honours context cancellation
while waiting, and logs repository failures with the operation name before
returning them unchanged.
*/
package service
