// Package structure owns the administrative mutations of the course tree:
// appending, reordering, publishing and deleting modules and lessons. Every
// mutation keeps order indices dense (0..n-1 among live siblings) and runs in
// a single transaction so no duplicate or gap is ever observable. Mutations
// that can change the published lesson set recompute progress for every
// enrollment of the course in the same transaction.
package structure

import (
	"errors"

	"lms/models"
	courseModels "lms/models/course"
	"lms/progress"

	"gorm.io/gorm"
)

// AppendModule creates a module at the end of the course's module list.
func AppendModule(db *gorm.DB, courseID uint, module *courseModels.Module) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var crs courseModels.Course
		if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&courseModels.Module{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&count).Error; err != nil {
			return err
		}

		module.CourseID = courseID
		module.OrderIndex = int(count) // indices are dense, next slot == live count
		module.IsPublished = false
		return tx.Create(module).Error
	})
}

// AppendLesson creates a lesson at the end of the module's lesson list.
func AppendLesson(db *gorm.DB, moduleID uint, lesson *courseModels.Lesson) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var module courseModels.Module
		if err := tx.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ?", moduleID, false).Count(&count).Error; err != nil {
			return err
		}

		lesson.ModuleID = moduleID
		lesson.CourseID = module.CourseID
		lesson.OrderIndex = int(count)
		lesson.IsPublished = false
		return tx.Create(lesson).Error
	})
}

// ReorderModule moves a module to newIndex among its course's live modules,
// shifting the intervening siblings by one. The whole renumbered range is
// written inside the transaction.
func ReorderModule(db *gorm.DB, moduleID uint, newIndex int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var module courseModels.Module
		if err := tx.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		var siblings []courseModels.Module
		if err := tx.Where("course_id = ? AND is_deleted = ?", module.CourseID, false).
			Order("order_index asc").Find(&siblings).Error; err != nil {
			return err
		}

		ids := make([]uint, len(siblings))
		for i, s := range siblings {
			ids[i] = s.ID
		}
		order, err := moveID(ids, module.ID, newIndex)
		if err != nil {
			return err
		}
		return renumber(tx, &courseModels.Module{}, order)
	})
}

// ReorderLesson moves a lesson to newIndex among its module's live lessons.
func ReorderLesson(db *gorm.DB, lessonID uint, newIndex int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var lesson courseModels.Lesson
		if err := tx.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		var siblings []courseModels.Lesson
		if err := tx.Where("module_id = ? AND is_deleted = ?", lesson.ModuleID, false).
			Order("order_index asc").Find(&siblings).Error; err != nil {
			return err
		}

		ids := make([]uint, len(siblings))
		for i, s := range siblings {
			ids[i] = s.ID
		}
		order, err := moveID(ids, lesson.ID, newIndex)
		if err != nil {
			return err
		}
		return renumber(tx, &courseModels.Lesson{}, order)
	})
}

// DeleteModule soft-deletes a module, its lessons and their completions,
// renumbers the surviving modules and recomputes course progress (the
// denominator may have shrunk).
func DeleteModule(db *gorm.DB, moduleID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var module courseModels.Module
		if err := tx.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&courseModels.Module{}).Where("id = ?", module.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		var lessonIDs []uint
		if err := tx.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Model(&courseModels.Lesson{}).Where("id IN ?", lessonIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
			if err := tx.Model(&courseModels.LessonCompletion{}).Where("lesson_id IN ?", lessonIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
		}

		if err := renumberSurvivingModules(tx, module.CourseID); err != nil {
			return err
		}
		return progress.RecomputeCourse(tx, module.CourseID)
	})
}

// DeleteLesson soft-deletes a lesson and its completions, renumbers the
// surviving siblings and recomputes course progress.
func DeleteLesson(db *gorm.DB, lessonID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var lesson courseModels.Lesson
		if err := tx.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&courseModels.Lesson{}).Where("id = ?", lesson.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.LessonCompletion{}).Where("lesson_id = ?", lesson.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		if err := renumberSurvivingLessons(tx, lesson.ModuleID); err != nil {
			return err
		}
		return progress.RecomputeCourse(tx, lesson.CourseID)
	})
}

// SetModulePublished flips a module's publish flag and recomputes progress
// for the course, since the published lesson set changes with it.
func SetModulePublished(db *gorm.DB, moduleID uint, published bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var module courseModels.Module
		if err := tx.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&courseModels.Module{}).Where("id = ?", module.ID).
			Update("is_published", published).Error; err != nil {
			return err
		}
		return progress.RecomputeCourse(tx, module.CourseID)
	})
}

// SetLessonPublished flips a lesson's publish flag and recomputes progress
// for the course.
func SetLessonPublished(db *gorm.DB, lessonID uint, published bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var lesson courseModels.Lesson
		if err := tx.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&courseModels.Lesson{}).Where("id = ?", lesson.ID).
			Update("is_published", published).Error; err != nil {
			return err
		}
		return progress.RecomputeCourse(tx, lesson.CourseID)
	})
}

// moveID returns ids with target moved to newIndex, or ErrInvalidOrder when
// newIndex is outside [0, len).
func moveID(ids []uint, target uint, newIndex int) ([]uint, error) {
	if newIndex < 0 || newIndex >= len(ids) {
		return nil, models.ErrInvalidOrder
	}

	cur := -1
	for i, id := range ids {
		if id == target {
			cur = i
			break
		}
	}
	if cur == -1 {
		return nil, models.ErrNotFound
	}

	out := make([]uint, 0, len(ids))
	out = append(out, ids[:cur]...)
	out = append(out, ids[cur+1:]...)
	out = append(out[:newIndex], append([]uint{target}, out[newIndex:]...)...)
	return out, nil
}

// renumber writes position i as the order index of order[i].
func renumber(tx *gorm.DB, model interface{}, order []uint) error {
	for i, id := range order {
		if err := tx.Model(model).Where("id = ?", id).Update("order_index", i).Error; err != nil {
			return err
		}
	}
	return nil
}

func renumberSurvivingModules(tx *gorm.DB, courseID uint) error {
	var ids []uint
	if err := tx.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Pluck("id", &ids).Error; err != nil {
		return err
	}
	return renumber(tx, &courseModels.Module{}, ids)
}

func renumberSurvivingLessons(tx *gorm.DB, moduleID uint) error {
	var ids []uint
	if err := tx.Model(&courseModels.Lesson{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("order_index asc").Pluck("id", &ids).Error; err != nil {
		return err
	}
	return renumber(tx, &courseModels.Lesson{}, ids)
}
