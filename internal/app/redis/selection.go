package redis

import (
	"context"
	"slices"
	"strconv"
	"time"
)

// Выбранные для массовых операций записи хранятся в Redis SET на пользователя и область.
// Client реализует selection.Store.

const (
	selectionPrefix = "selection"
	selectionTTL    = 7 * 24 * time.Hour
)

func (c *Client) selectionKey(userID uint, scope string) string {
	return c.key(selectionPrefix, strconv.FormatUint(uint64(userID), 10), scope)
}

func (c *Client) Selected(ctx context.Context, userID uint, scope string) ([]uint, error) {
	members, err := c.client.SMembers(ctx, c.selectionKey(userID, scope)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	slices.Sort(ids)
	return ids, nil
}

func members(ids []uint) []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatUint(uint64(id), 10)
	}
	return out
}

func (c *Client) Add(ctx context.Context, userID uint, scope string, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}
	key := c.selectionKey(userID, scope)

	pipe := c.client.TxPipeline()
	pipe.SAdd(ctx, key, members(ids)...)
	pipe.Expire(ctx, key, selectionTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *Client) Remove(ctx context.Context, userID uint, scope string, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}
	return c.client.SRem(ctx, c.selectionKey(userID, scope), members(ids)...).Err()
}

// Toggle не атомарен между SISMEMBER и изменением; конкурирующие переключения
// одной записи одним пользователем не ожидаются.
func (c *Client) Toggle(ctx context.Context, userID uint, scope string, id uint) (bool, error) {
	key := c.selectionKey(userID, scope)
	member := strconv.FormatUint(uint64(id), 10)

	present, err := c.client.SIsMember(ctx, key, member).Result()
	if err != nil {
		return false, err
	}
	if present {
		return false, c.client.SRem(ctx, key, member).Err()
	}
	return true, c.Add(ctx, userID, scope, id)
}

func (c *Client) Clear(ctx context.Context, userID uint, scope string) error {
	return c.client.Del(ctx, c.selectionKey(userID, scope)).Err()
}

// Replace заменяет выбор одной транзакцией MULTI/EXEC
func (c *Client) Replace(ctx context.Context, userID uint, scope string, ids ...uint) error {
	key := c.selectionKey(userID, scope)

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(ids) > 0 {
		pipe.SAdd(ctx, key, members(ids)...)
		pipe.Expire(ctx, key, selectionTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}
