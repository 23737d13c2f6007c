package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"balancegame/models"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()
)

// InitRedis initializes Redis connection
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisURL,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(pingCtx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return nil
}

// CloseRedis closes Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisAvailable checks if Redis is connected
func IsRedisAvailable() bool {
	if RedisClient == nil {
		return false
	}
	_, err := RedisClient.Ping(ctx).Result()
	return err == nil
}

// ==================== CACHE KEYS ====================

const (
	GameCachePrefix     = "game:"          // game:123
	GamesCacheKey       = "games:all"      // full game list
	CommentsCachePrefix = "comments:game:" // comments:game:123
	RateLimitPrefix     = "ratelimit:"     // ratelimit:login:1.2.3.4
)

// ==================== GENERIC CACHE OPERATIONS ====================

// Set stores any value in cache with TTL
func Set(key string, value interface{}, ttl time.Duration) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// Get retrieves value from cache
func Get(key string, dest interface{}) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}

	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("cache miss")
	}
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

// Delete removes key from cache
func Delete(key string) error {
	if !IsRedisAvailable() {
		return nil
	}
	return RedisClient.Del(ctx, key).Err()
}

// ==================== GAME CACHING ====================

// GetGame returns a cached game with its choices
func GetGame(gameID uint) (*models.Game, error) {
	key := fmt.Sprintf("%s%d", GameCachePrefix, gameID)
	var game models.Game
	if err := Get(key, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// SetGame caches a game for 1 hour
func SetGame(gameID uint, game *models.Game) error {
	key := fmt.Sprintf("%s%d", GameCachePrefix, gameID)
	return Set(key, game, time.Hour)
}

// GetGames returns the cached game list
func GetGames() ([]models.Game, error) {
	var games []models.Game
	if err := Get(GamesCacheKey, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// SetGames caches the game list for 5 minutes
func SetGames(games []models.Game) error {
	return Set(GamesCacheKey, games, 5*time.Minute)
}

// InvalidateGames removes the game list cache
func InvalidateGames() error {
	return Delete(GamesCacheKey)
}

// ==================== COMMENT CACHING ====================

// GetComments returns cached comments for a game
func GetComments(gameID uint) ([]models.Comment, error) {
	key := fmt.Sprintf("%s%d", CommentsCachePrefix, gameID)
	var comments []models.Comment
	if err := Get(key, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// SetComments caches comments for 10 minutes
func SetComments(gameID uint, comments []models.Comment) error {
	key := fmt.Sprintf("%s%d", CommentsCachePrefix, gameID)
	return Set(key, comments, 10*time.Minute)
}

// InvalidateComments removes the comment cache for a game
func InvalidateComments(gameID uint) error {
	key := fmt.Sprintf("%s%d", CommentsCachePrefix, gameID)
	return Delete(key)
}

// ==================== RATE LIMITING ====================

// CheckRateLimit counts requests per key in a fixed window.
// Allows everything when Redis is unavailable.
func CheckRateLimit(key string, maxRequests int, window time.Duration) (bool, int, error) {
	if !IsRedisAvailable() {
		return true, maxRequests, nil
	}

	fullKey := RateLimitPrefix + key

	count, err := RedisClient.Get(ctx, fullKey).Int()
	if err == redis.Nil {
		if err := RedisClient.Set(ctx, fullKey, 1, window).Err(); err != nil {
			return false, 0, err
		}
		return true, maxRequests - 1, nil
	}
	if err != nil {
		return false, 0, err
	}

	if count >= maxRequests {
		return false, 0, nil
	}

	newCount, err := RedisClient.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, 0, err
	}

	return true, maxRequests - int(newCount), nil
}
