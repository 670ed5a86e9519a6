package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"smartstock/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService fronts redis for the dashboard aggregates. Caching is best
// effort: a dead redis degrades to querying the database, never to errors.
type CacheService interface {
	GetDashboard(ctx context.Context, businessID uuid.UUID) (*models.Dashboard, error)
	SetDashboard(ctx context.Context, businessID uuid.UUID, dashboard *models.Dashboard, ttl time.Duration) error
	InvalidateBusiness(ctx context.Context, businessID uuid.UUID) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis:// and rediss:// style addresses as well as host:port.
	parsedAddr := addr
	if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
		parsedAddr = hostPort
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: redis ping failed on initialization: %v (address: %s)", err, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func dashboardKey(businessID uuid.UUID) string {
	return fmt.Sprintf("dashboard:%s", businessID.String())
}

func (s *redisCacheService) GetDashboard(ctx context.Context, businessID uuid.UUID) (*models.Dashboard, error) {
	data, err := s.client.Get(ctx, dashboardKey(businessID)).Bytes()
	if err != nil {
		return nil, err
	}
	dashboard := &models.Dashboard{}
	if err := json.Unmarshal(data, dashboard); err != nil {
		return nil, err
	}
	return dashboard, nil
}

func (s *redisCacheService) SetDashboard(ctx context.Context, businessID uuid.UUID, dashboard *models.Dashboard, ttl time.Duration) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, dashboardKey(businessID), data, ttl).Err()
}

func (s *redisCacheService) InvalidateBusiness(ctx context.Context, businessID uuid.UUID) error {
	return s.client.Del(ctx, dashboardKey(businessID)).Err()
}
