package models

import "gorm.io/gorm"

type ProductCategory struct {
	gorm.Model
	Name string `gorm:"unique;not null" json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`
}

type Product struct {
	gorm.Model
	Title          string         `gorm:"not null" json:"title"`
	Slug           string         `gorm:"uniqueIndex" json:"slug"`
	CategoryID     *uint          `json:"category_id"`
	ImageURL       string         `json:"image_url"`
	Description    string         `json:"description"`
	Price          float64        `gorm:"not null" json:"price"`
	CompareAtPrice *float64       `json:"compare_at_price"`
	Inventory      int            `gorm:"default:0" json:"inventory"`
	Sizes          string         `json:"sizes"`  // comma-separated, e.g. S,M,L,XL
	Colors         string         `json:"colors"` // comma-separated
	Featured       bool           `gorm:"default:false" json:"featured"`
	IsPublished    bool           `gorm:"default:false" json:"is_published"`
	Gallery        []ProductImage `json:"gallery,omitempty"`
}

type ProductImage struct {
	gorm.Model
	ProductID uint   `gorm:"index" json:"product_id"`
	ImageURL  string `json:"image_url"`
	Alt       string `json:"alt"`
}

// Order statuses.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderCancelled = "cancelled"
)

type Order struct {
	gorm.Model
	Number   string      `gorm:"uniqueIndex" json:"number"`
	UserID   *uint       `json:"user_id"` // nil for guest checkout
	FullName string      `gorm:"not null" json:"full_name"`
	Phone    string      `gorm:"not null" json:"phone"`
	Email    string      `json:"email"`
	Address  string      `json:"address"`
	Notes    string      `json:"notes"`
	Status   string      `gorm:"default:pending" json:"status"`
	Total    float64     `gorm:"default:0" json:"total"`
	Items    []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `gorm:"default:1" json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}
