package access

import (
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// ModuleNode is a module with its lessons, ordered by order_index.
type ModuleNode struct {
	courseModels.Module
	Lessons []courseModels.Lesson `json:"lessons"`
}

// CourseTree is the full module/lesson hierarchy of one course.
type CourseTree struct {
	Course  courseModels.Course `json:"course"`
	Modules []ModuleNode        `json:"modules"`
}

// LoadTree loads the raw (unfiltered) tree of a course: all live modules and
// lessons including drafts, ordered by order_index.
func LoadTree(db *gorm.DB, crs courseModels.Course) (*CourseTree, error) {
	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", crs.ID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	var lessons []courseModels.Lesson
	if err := db.Where("course_id = ? AND is_deleted = ?", crs.ID, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return nil, err
	}

	byModule := make(map[uint][]courseModels.Lesson, len(modules))
	for _, l := range lessons {
		byModule[l.ModuleID] = append(byModule[l.ModuleID], l)
	}

	tree := &CourseTree{Course: crs, Modules: make([]ModuleNode, 0, len(modules))}
	for _, m := range modules {
		tree.Modules = append(tree.Modules, ModuleNode{Module: m, Lessons: byModule[m.ID]})
	}
	return tree, nil
}

// FilterTree returns the part of the tree the given tier may see.
//
// AdminPreview gets the tree unmodified; the IsPublished flags on each node
// let editing UIs tell draft from live content. NoAccess gets the course row
// with no modules at all. Every other tier gets published modules and, within
// them, published lessons, order preserved. A published module with zero
// published lessons is kept as an empty module so callers can see the shape
// of a course before its lessons arrive.
func FilterTree(tree *CourseTree, tier AccessTier) *CourseTree {
	if tier == AdminPreview {
		return tree
	}

	out := &CourseTree{Course: tree.Course, Modules: []ModuleNode{}}
	if tier == NoAccess {
		return out
	}

	for _, m := range tree.Modules {
		if !m.IsPublished {
			continue
		}
		node := ModuleNode{Module: m.Module, Lessons: []courseModels.Lesson{}}
		for _, l := range m.Lessons {
			if l.IsPublished {
				node.Lessons = append(node.Lessons, l)
			}
		}
		out.Modules = append(out.Modules, node)
	}
	return out
}
