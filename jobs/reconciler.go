package jobs

import (
	"log"
	"time"

	"lms/database"
	courseModels "lms/models/course"
	"lms/progress"

	"github.com/robfig/cron/v3"
)

func logReconciler(message string) {
	log.Printf("[PROGRESS-RECONCILER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcileAllCourses recomputes enrollment progress for every live course.
// Structural mutations already recompute eagerly in their own transaction;
// this is the safety net that catches anything mutated outside the engine
// (manual DB surgery, partial rollouts).
func reconcileAllCourses() {
	db := database.Database.Db

	var courseIDs []uint
	if err := db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Pluck("id", &courseIDs).Error; err != nil {
		logReconciler("Error fetching courses: " + err.Error())
		return
	}

	for _, id := range courseIDs {
		if err := progress.RecomputeCourse(db, id); err != nil {
			logReconciler("Error recomputing course: " + err.Error())
		}
	}
	logReconciler("Reconciliation pass finished")
}

// StartProgressReconciler runs the nightly progress reconciliation job.
func StartProgressReconciler() {
	c := cron.New()

	if _, err := c.AddFunc("30 3 * * *", reconcileAllCourses); err != nil {
		log.Fatalf("Failed to schedule progress reconciler: %v", err)
	}

	c.Start()
	logReconciler("Scheduler started (daily at 03:30)")
}
