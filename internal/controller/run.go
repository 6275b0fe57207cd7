package controller

import (
	"context"
	"time"
)

// Run ticks until ctx is done or a tick returns an error, ErrRestart included.
func (c *Controller) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := c.Tick(now); err != nil {
				return err
			}
		}
	}
}
