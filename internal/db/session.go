package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrConflict is returned when a conditional state transition (end or
// resume) matched no row: either the session does not exist for this
// owner or another writer already flipped its state.
var ErrConflict = errors.New("session state conflict")

// CreateSession inserts a new active session starting now.
func CreateSession(db *gorm.DB, id, userID, name string, startTime time.Time) (*Session, error) {
	session := &Session{
		ID:        id,
		UserID:    userID,
		Name:      name,
		StartTime: startTime,
		IsActive:  true,
		Drinks:    []Drink{},
	}
	if err := db.Omit("Drinks").Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// SessionByID loads one session scoped to its owner, with drinks in
// ascending timestamp order.
func SessionByID(db *gorm.DB, userID, id string) (*Session, error) {
	var session Session
	err := db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Drinks", func(q *gorm.DB) *gorm.DB { return q.Order("timestamp ASC") }).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SessionsByUser lists all of a user's sessions, newest first, each with
// its drinks in ascending timestamp order.
func SessionsByUser(db *gorm.DB, userID string) ([]Session, error) {
	var sessions []Session
	err := db.Where("user_id = ?", userID).
		Order("start_time DESC").
		Preload("Drinks", func(q *gorm.DB) *gorm.DB { return q.Order("timestamp ASC") }).
		Find(&sessions).Error
	return sessions, err
}

// ActiveSession returns the user's currently active session, or
// gorm.ErrRecordNotFound if none is open.
func ActiveSession(db *gorm.DB, userID string) (*Session, error) {
	var session Session
	err := db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("start_time DESC").
		Preload("Drinks", func(q *gorm.DB) *gorm.DB { return q.Order("timestamp ASC") }).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SessionsInRange lists a user's sessions whose start_time falls within
// [start, end], newest first, with drinks preloaded ascending. Used by
// the monthly history and dashboard aggregates.
func SessionsInRange(db *gorm.DB, userID string, start, end time.Time) ([]Session, error) {
	var sessions []Session
	err := db.Where("user_id = ? AND start_time >= ? AND start_time <= ?", userID, start, end).
		Order("start_time DESC").
		Preload("Drinks", func(q *gorm.DB) *gorm.DB { return q.Order("timestamp ASC") }).
		Find(&sessions).Error
	return sessions, err
}

// EndSession closes an active session. The update is conditional on
// is_active so a concurrent end (manual or inactivity worker) cannot be
// silently overwritten; the loser gets ErrConflict.
func EndSession(db *gorm.DB, userID, id string, endTime time.Time) (*Session, error) {
	res := db.Model(&Session{}).
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
		Updates(map[string]interface{}{
			"end_time":  endTime,
			"is_active": false,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}
	return SessionByID(db, userID, id)
}

// ResumeSession reopens a closed session, clearing its end time. Same
// conditional-update contract as EndSession.
func ResumeSession(db *gorm.DB, userID, id string) (*Session, error) {
	res := db.Model(&Session{}).
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, false).
		Updates(map[string]interface{}{
			"end_time":  nil,
			"is_active": true,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}
	return SessionByID(db, userID, id)
}

// DeleteSession removes a session and everything it owns. The store has
// no cascading delete, so drinks go first, then the session row, in one
// transaction.
func DeleteSession(db *gorm.DB, userID, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var session Session
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&session).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&Drink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&session).Error
	})
}
