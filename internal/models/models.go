package models

import (
	"github.com/dicreate/mall-api/internal/catalog"
)

type Product struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string  `gorm:"not null"                 json:"name"`
	Description   string  `gorm:"not null"                 json:"description"`
	Thumbnail     string  `json:"thumbnail"`
	Price         float64 `gorm:"not null"                 json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Category      string  `gorm:"index;not null"           json:"category"`
	Subcategory   string  `json:"subcategory,omitempty"`
	Brand         string  `json:"brand,omitempty"`
	Rating        float64 `json:"rating"`
	ReviewCount   uint    `json:"review_count"`
	Sales         uint    `json:"sales"`
	Stock         uint    `json:"stock"`
	IsNew         bool    `json:"is_new"`
	IsHot         bool    `json:"is_hot"`
}

func (p Product) QueryFacets() catalog.Facets {
	return catalog.Facets{
		Category:    p.Category,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Rating:      p.Rating,
		Sales:       p.Sales,
		IsNew:       p.IsNew,
	}
}

// Fabric is one resource-library record. It goes through the same query
// pipeline as products, with the material standing in as the category tag.
type Fabric struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Description string  `json:"description"`
	Material    string  `gorm:"index;not null"           json:"material"`
	Color       string  `json:"color,omitempty"`
	Pattern     string  `json:"pattern,omitempty"`
	Preview     string  `json:"preview,omitempty"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Rating      float64 `json:"rating"`
	Sales       uint    `json:"sales"`
	Stock       uint    `json:"stock"`
	IsNew       bool    `json:"is_new"`
}

func (f Fabric) QueryFacets() catalog.Facets {
	return catalog.Facets{
		Category:    f.Material,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Rating:      f.Rating,
		Sales:       f.Sales,
		IsNew:       f.IsNew,
	}
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Order struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Number    string  `gorm:"unique;not null"          json:"number"`
	UserID    uint    `gorm:"index;not null"           json:"user_id"`
	Total     float64 `gorm:"not null"                 json:"total"`
	Status    string  `gorm:"not null"                 json:"status"`
	CreatedAt int64   `json:"created_at"`
}

type OrderItem struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  uint    `gorm:"index;not null"           json:"order_id"`
	UserID   uint    `gorm:"index;not null"           json:"user_id"`
	ItemID   string  `gorm:"not null"                 json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `gorm:"not null"                 json:"price"`
	Quantity uint    `gorm:"not null"                 json:"quantity"`
}
