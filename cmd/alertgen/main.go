// Command alertgen runs a single alert lifecycle pass and exits. Intended
// for external schedulers (cron, systemd timers) instead of the in-process
// ticker.
package main

import (
	"context"
	"log"

	"WasteNot-Backend/cmd/config"
	"WasteNot-Backend/internal/utils"
	"WasteNot-Backend/pkg/alert"
	"WasteNot-Backend/pkg/food"
	"WasteNot-Backend/pkg/freshness"
	"WasteNot-Backend/pkg/user"

	"time"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	classifier := freshness.NewClassifier(freshness.DefaultKeywords())
	alertService := alert.NewAlertService(
		alert.NewAlertRepository(db),
		food.NewFoodRepository(db),
		user.NewUserRepository(db),
		alert.NewMailNotifier(),
		classifier,
		10*time.Minute,
	)

	summary, err := alertService.GenerateAlerts(context.Background())
	if err != nil {
		log.Fatalf("alert run failed: %v", err)
	}

	log.Printf("alert run complete: %d created, %d emails sent, %d critical, %d expiring tomorrow, %d processed",
		summary.AlertsCreated,
		summary.EmailsSent,
		summary.CriticalItemsCount,
		summary.ItemsExpiringTomorrowCount,
		summary.TotalItemsProcessed,
	)
}
