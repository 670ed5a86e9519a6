package jobs

import (
	"context"
	"log"
	"time"

	"smartstock/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// LowStockAlert names one product that has fallen to or below the threshold.
type LowStockAlert struct {
	BusinessID uuid.UUID
	ProductID  uuid.UUID
	Name       string
	Quantity   int
	Threshold  int
}

// LowStockSweeper periodically walks every business and logs the products
// running low, so operators see restocking candidates without polling the API.
type LowStockSweeper struct {
	scheduler    gocron.Scheduler
	productRepo  repositories.ProductRepository
	settingsRepo repositories.SettingsRepository
	threshold    int
}

func NewLowStockSweeper(productRepo repositories.ProductRepository, settingsRepo repositories.SettingsRepository, threshold int) (*LowStockSweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &LowStockSweeper{
		scheduler:    scheduler,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		threshold:    threshold,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(s.Sweep, context.Background()),
		gocron.WithName("low-stock-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LowStockSweeper) Start() {
	log.Println("Starting low-stock sweep scheduler")
	s.scheduler.Start()
}

func (s *LowStockSweeper) Stop() error {
	log.Println("Stopping low-stock sweep scheduler")
	return s.scheduler.Shutdown()
}

// Sweep checks every business once and returns the alerts it logged.
func (s *LowStockSweeper) Sweep(ctx context.Context) ([]LowStockAlert, error) {
	businessIDs, err := s.settingsRepo.ListBusinessIDs(ctx)
	if err != nil {
		log.Printf("Low-stock sweep: failed to list businesses: %v", err)
		return nil, err
	}

	var alerts []LowStockAlert
	for _, businessID := range businessIDs {
		products, err := s.productRepo.LowStock(ctx, businessID, s.threshold)
		if err != nil {
			log.Printf("Low-stock sweep: business %s: %v", businessID, err)
			continue
		}
		for _, product := range products {
			alert := LowStockAlert{
				BusinessID: businessID,
				ProductID:  product.ID,
				Name:       product.Name,
				Quantity:   product.Quantity,
				Threshold:  s.threshold,
			}
			alerts = append(alerts, alert)
			log.Printf("LOW STOCK: business=%s product=%q quantity=%d threshold=%d",
				businessID, product.Name, product.Quantity, s.threshold)
		}
	}
	return alerts, nil
}
