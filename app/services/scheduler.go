package services

import (
	"log"
	"time"
)

// Broadcaster pushes a typed message to connected realtime clients.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// StartScheduler runs the background tasks on a one-minute tick. Currently
// the only task is the optional morning code generation.
func StartScheduler(codes *DailyCodeService, broadcaster Broadcaster, generationHour int) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			if now.Hour() == generationHour && now.Minute() == 0 {
				log.Printf("Triggering scheduled tasks [%02d:00]...", generationHour)

				code, created, err := codes.EnsureForToday()
				if err != nil {
					log.Printf("Error generating daily code: %v", err)
					continue
				}
				if created {
					log.Printf("Generated daily code for %s", code.DateString)
					if broadcaster != nil {
						broadcaster.Broadcast("daily_code:new", code)
					}
				}
			}
		}
	}()
}
