// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MapOrdered applies fn to every item with at most limit calls in flight and
// returns the outputs in input order. Each call writes only its own slot, so
// no locking is needed. The first error cancels the context passed to the
// remaining calls and is returned; limit <= 0 means no limit.
func MapOrdered[In, Out any](ctx context.Context, items []In, limit int, fn func(ctx context.Context, index int, item In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(items))
	if len(items) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			v, err := fn(gctx, i, item)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
