package concurrent

import (
	"context"
	"sync"
	"time"

	"balancegame/models"

	"gorm.io/gorm"
)

// DashboardStats aggregates the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalGames        int64 `json:"total_games"`
	TotalComments     int64 `json:"total_comments"`
	TotalChoiceLikes  int64 `json:"total_choice_likes"`
	TotalCommentLikes int64 `json:"total_comment_likes"`
}

// CalculateDashboardStats runs the count queries in parallel.
// Each COUNT(*) is independent, so the fan-out cuts latency to the slowest query.
func CalculateDashboardStats(database *gorm.DB) (*DashboardStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats := &DashboardStats{}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.TotalUsers},
		{&models.Game{}, &stats.TotalGames},
		{&models.Comment{}, &stats.TotalComments},
		{&models.ChoiceLike{}, &stats.TotalChoiceLikes},
		{&models.CommentLike{}, &stats.TotalCommentLikes},
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(counts))

	for _, c := range counts {
		wg.Add(1)
		go func(model interface{}, dest *int64) {
			defer wg.Done()
			if err := database.WithContext(ctx).Model(model).Count(dest).Error; err != nil {
				errChan <- err
			}
		}(c.model, c.dest)
	}

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return nil, err
	}
	return stats, nil
}
