package shared

import (
	"context"
	"strings"

	"agenda/shared/cache"
	"agenda/shared/constant"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins the given parts into one cache key.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, cacheKeySeparator)
}

// InvalidateCaches clears every cached entry under the given prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// SortedInsert inserts value into a sorted slice of slot labels, keeping
// ascending order. Labels are zero-padded "HH:MM" strings, so lexicographic
// order equals chronological order.
func SortedInsert(slots []string, value string) []string {
	idx := len(slots)

	for i, slot := range slots {
		if value < slot {
			idx = i
			break
		}
	}

	slots = append(slots, "")
	copy(slots[idx+1:], slots[idx:])
	slots[idx] = value

	return slots
}

// Remove returns the slice without the first occurrence of value.
func Remove(slots []string, value string) []string {
	for i, slot := range slots {
		if slot == value {
			return append(slots[:i:i], slots[i+1:]...)
		}
	}

	return slots
}

// Contains reports whether value is present in the slice.
func Contains(slots []string, value string) bool {
	for _, slot := range slots {
		if slot == value {
			return true
		}
	}

	return false
}
