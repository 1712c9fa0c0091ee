package db

import (
	"gorm.io/gorm"
)

// CreateDrink inserts a logged drink. The caller has already verified
// session ownership and validated units/buzz.
func CreateDrink(db *gorm.DB, drink *Drink) error {
	return db.Create(drink).Error
}

// DrinksBySession lists a session's drinks in ascending timestamp order.
func DrinksBySession(db *gorm.DB, userID, sessionID string) ([]Drink, error) {
	var drinks []Drink
	err := db.Where("session_id = ? AND user_id = ?", sessionID, userID).
		Order("timestamp ASC").
		Find(&drinks).Error
	return drinks, err
}

// DrinkByID loads one drink scoped to its owner.
func DrinkByID(db *gorm.DB, userID, id string) (*Drink, error) {
	var drink Drink
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&drink).Error; err != nil {
		return nil, err
	}
	return &drink, nil
}

// UpdateDrink sets the mutable fields (units, buzz level) of an owned drink.
func UpdateDrink(db *gorm.DB, userID, id string, units float64, buzzLevel int) (*Drink, error) {
	res := db.Model(&Drink{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"units":      units,
			"buzz_level": buzzLevel,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return DrinkByID(db, userID, id)
}

// DeleteDrink removes a single owned drink.
func DeleteDrink(db *gorm.DB, userID, id string) error {
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&Drink{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
