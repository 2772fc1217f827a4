package alert

import (
	"context"
	"log"
	"time"
)

// Scheduler triggers periodic alert lifecycle runs. Runs are allowed to
// overlap a slow predecessor; the repository transaction keeps per-item
// refreshes consistent.
type Scheduler struct {
	service  AlertService
	interval time.Duration
	stop     chan struct{}
}

func NewScheduler(service AlertService, interval time.Duration) *Scheduler {
	return &Scheduler{
		service:  service,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.run()
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			summary, err := s.service.GenerateAlerts(context.Background())
			if err != nil {
				log.Printf("scheduled alert run failed: %v", err)
				continue
			}
			log.Printf("scheduled alert run: %d created, %d emails, %d items",
				summary.AlertsCreated, summary.EmailsSent, summary.TotalItemsProcessed)
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stop)
}
