package domain

import "time"

// BulletinCategory classifies a bulletin post.
type BulletinCategory string

const (
	CategoryNotice  BulletinCategory = "notice"
	CategoryWarning BulletinCategory = "warning"
	CategoryEvent   BulletinCategory = "event"
	CategoryGeneral BulletinCategory = "general"
)

// BulletinCategories lists the accepted categories.
func BulletinCategories() []BulletinCategory {
	return []BulletinCategory{CategoryNotice, CategoryWarning, CategoryEvent, CategoryGeneral}
}

// Valid reports whether c is a known category.
func (c BulletinCategory) Valid() bool {
	for _, candidate := range BulletinCategories() {
		if c == candidate {
			return true
		}
	}
	return false
}

// BulletinMessage is a post on the company bulletin board.
type BulletinMessage struct {
	ID         string
	Title      string
	Content    string
	Category   BulletinCategory
	IsPinned   bool
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}

// BulletinDraft is the creation form of the bulletin board.
type BulletinDraft struct {
	Title    string
	Content  string
	Category BulletinCategory
	IsPinned bool
	Topic    string
}

// EmptyBulletinDraft returns the form defaults.
func EmptyBulletinDraft() BulletinDraft {
	return BulletinDraft{Category: CategoryGeneral}
}
