package storage

import (
	"errors"
	"fmt"
)

// Category is a logical image category. Each category is bound to exactly
// one storage bucket; the mapping is fixed for the life of the process.
type Category string

const (
	// CategoryLogo holds business logo images.
	CategoryLogo Category = "logo"
	// CategoryCover holds business cover images.
	CategoryCover Category = "cover"
	// CategoryAvatar holds user profile pictures.
	CategoryAvatar Category = "avatar"
	// CategoryService holds per-service gallery images.
	CategoryService Category = "service"
)

// ErrUnknownCategory is returned for a category outside the fixed set.
var ErrUnknownCategory = errors.New("unknown image category")

var categoryBuckets = map[Category]string{
	CategoryLogo:    "business-logos",
	CategoryCover:   "business-covers",
	CategoryAvatar:  "avatars",
	CategoryService: "service-images",
}

// ParseCategory validates a category name received from a caller.
func ParseCategory(name string) (Category, error) {
	category := Category(name)
	if _, ok := categoryBuckets[category]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}

	return category, nil
}

// Bucket returns the storage bucket bound to the category.
func (c Category) Bucket() string {
	return categoryBuckets[c]
}
