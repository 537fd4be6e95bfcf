package redis

import (
	"context"
	"time"
)

const jwtPrefix = "jwt"

// WriteJWTToBlacklist кладёт отозванный токен в blacklist до истечения его срока
func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error {
	return c.client.Set(ctx, c.key(jwtPrefix, jwtStr), true, jwtTTL).Err()
}

// CheckJWTInBlacklist возвращает nil, если токен отозван, и redis.Nil, если нет
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	return c.client.Get(ctx, c.key(jwtPrefix, jwtStr)).Err()
}
