package services

import (
	"github.com/luci582/UnlockED-sub000/backend/models"
	"gorm.io/gorm"
)

// RecalcCourseAggregates recomputes a course's review_count and rating from
// the full set of surviving reviews. Deliberately a recount rather than an
// incremental adjustment: the stored aggregate can never drift from the
// review rows, even if an earlier update was missed. Must run inside the same
// transaction as the review insert/delete that triggered it.
func RecalcCourseAggregates(tx *gorm.DB, courseID uint) error {
	var stats struct {
		Count  int64
		Rating *float64
	}

	err := tx.Model(&models.Review{}).
		Where("course_id = ?", courseID).
		Select("COUNT(*) AS count, AVG(overall_rating) AS rating").
		Scan(&stats).Error
	if err != nil {
		return err
	}

	// AVG над пустым набором дает NULL — курс без отзывов остается без рейтинга
	res := tx.Model(&models.Course{}).
		Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"review_count": stats.Count,
			"rating":       stats.Rating,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
