// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"life-progression-system/repository"

	"github.com/go-co-op/gocron/v2"
)

// MaintenanceScheduler runs the periodic housekeeping jobs: failing expired quests
// and resetting the rolling weekly/monthly faction counters.
type MaintenanceScheduler struct {
	Quests   *repository.QuestRepository
	Factions *repository.FactionStatRepository
}

func NewMaintenanceScheduler(quests *repository.QuestRepository, factions *repository.FactionStatRepository) *MaintenanceScheduler {
	return &MaintenanceScheduler{Quests: quests, Factions: factions}
}

func (m *MaintenanceScheduler) Start() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: fail quests past their deadline (no XP fan-out on failure)
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			n, err := m.Quests.FailExpired(context.Background(), time.Now())
			if err != nil {
				log.Printf("[Scheduler] Failed to expire quests: %v", err)
				return
			}
			if n > 0 {
				log.Printf("⏰ Expired %d overdue quest(s)", n)
			}
		}),
	)

	// Monday 00:00: reset weekly faction XP
	_, _ = sched.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday), gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			n, err := m.Factions.ResetWeekly(context.Background())
			if err != nil {
				log.Printf("[Scheduler] Weekly XP reset failed: %v", err)
				return
			}
			log.Printf("✅ Weekly XP reset (%d faction rows)", n)
		}),
	)

	// 1st of the month 00:00: reset monthly faction XP
	_, _ = sched.NewJob(
		gocron.MonthlyJob(1, gocron.NewDaysOfTheMonth(1), gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			n, err := m.Factions.ResetMonthly(context.Background())
			if err != nil {
				log.Printf("[Scheduler] Monthly XP reset failed: %v", err)
				return
			}
			log.Printf("✅ Monthly XP reset (%d faction rows)", n)
		}),
	)
}
