package utils

import (
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// MakeSlug turns a title into a URL slug.
func MakeSlug(value string) string {
	return slug.Make(value)
}

// UniqueSlug generates a slug for value that is unique within table's slug
// column, appending -2, -3, ... on collision.
func UniqueSlug(db *gorm.DB, table, value string) string {
	base := slug.Make(value)
	if base == "" {
		base = "item"
	}

	candidate := base
	n := 1
	for {
		var count int64
		db.Table(table).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		n++
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
