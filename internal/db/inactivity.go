package db

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// runInactivityOnce closes active sessions whose most recent drink is at
// least idle old. Sessions with no drinks yet are left open; the clock
// only starts once something is logged. Returns the IDs of sessions it
// closed.
func runInactivityOnce(db *gorm.DB, idle time.Duration, now time.Time) ([]string, error) {
	var sessions []Session
	if err := db.Where("is_active = ?", true).Find(&sessions).Error; err != nil {
		return nil, err
	}

	var closed []string
	cutoff := now.Add(-idle)

	for _, s := range sessions {
		var last Drink
		err := db.Where("session_id = ?", s.ID).Order("timestamp DESC").First(&last).Error
		if err == gorm.ErrRecordNotFound {
			continue
		}
		if err != nil {
			return closed, err
		}
		if last.Timestamp.After(cutoff) {
			continue
		}

		// Conditional update: a concurrent manual end wins and this
		// write affects no rows.
		res := db.Model(&Session{}).
			Where("id = ? AND is_active = ?", s.ID, true).
			Updates(map[string]interface{}{
				"end_time":  now,
				"is_active": false,
			})
		if res.Error != nil {
			return closed, res.Error
		}
		if res.RowsAffected > 0 {
			closed = append(closed, s.ID)
		}
	}

	return closed, nil
}

// StartInactivityWorker launches a background goroutine that checks once
// per minute for sessions idle longer than the configured timeout and
// ends them. onAutoClose is invoked for each session the worker closed.
func StartInactivityWorker(db *gorm.DB, idle time.Duration, onAutoClose func(sessionID string)) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for t := range ticker.C {
			closed, err := runInactivityOnce(db, idle, t)
			if err != nil {
				log.Printf("inactivity sweep error: %v", err)
			}
			for _, id := range closed {
				log.Printf("session %s auto-closed after %s of inactivity", id, idle)
				if onAutoClose != nil {
					onAutoClose(id)
				}
			}
		}
	}()
}
