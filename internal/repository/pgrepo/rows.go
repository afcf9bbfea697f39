// internal/repository/pgrepo/rows.go
package pgrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
)

// Base row fields
type baseRow struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// distribution stores the star histogram as JSONB.
type distribution models.RatingDistribution

func (d distribution) Value() (driver.Value, error) {
	return json.Marshal(models.RatingDistribution(d))
}

func (d *distribution) Scan(value interface{}) error {
	if value == nil {
		*d = distribution{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported rating distribution type %T", value)
	}

	var out models.RatingDistribution
	if err := json.Unmarshal(bytes, &out); err != nil {
		return err
	}
	*d = distribution(out)
	return nil
}

type userRow struct {
	baseRow
	Name                  string `gorm:"size:255;not null"`
	Email                 string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash          string `gorm:"size:255;not null"`
	Role                  string `gorm:"type:varchar(20);not null;index"`
	Address               string
	Phone                 string `gorm:"size:50"`
	Location              string
	Aadhar                string
	ProfileImage          string
	ProfileCompleted      bool
	IsMedicineVerified    bool
	PharmacyLicenseNumber string
	BusinessName          string
	DocumentURL           string
	AverageRating         float64
	NumReviews            int64
	RatingDistribution    distribution `gorm:"type:jsonb"`
}

func (userRow) TableName() string { return "users" }

func toUserRow(u *models.User) userRow {
	return userRow{
		baseRow:               baseRow{ID: u.ID, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt},
		Name:                  u.Name,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		Role:                  string(u.Role),
		Address:               u.Address,
		Phone:                 u.Phone,
		Location:              u.Location,
		Aadhar:                u.Aadhar,
		ProfileImage:          u.ProfileImage,
		ProfileCompleted:      u.ProfileCompleted,
		IsMedicineVerified:    u.IsMedicineVerified,
		PharmacyLicenseNumber: u.PharmacyLicenseNumber,
		BusinessName:          u.BusinessName,
		DocumentURL:           u.DocumentURL,
		AverageRating:         u.AverageRating,
		NumReviews:            u.NumReviews,
		RatingDistribution:    distribution(u.RatingDistribution),
	}
}

func (r userRow) model() models.User {
	return models.User{
		BaseModel:             models.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Name:                  r.Name,
		Email:                 r.Email,
		PasswordHash:          r.PasswordHash,
		Role:                  models.Role(r.Role),
		Address:               r.Address,
		Phone:                 r.Phone,
		Location:              r.Location,
		Aadhar:                r.Aadhar,
		ProfileImage:          r.ProfileImage,
		ProfileCompleted:      r.ProfileCompleted,
		IsMedicineVerified:    r.IsMedicineVerified,
		PharmacyLicenseNumber: r.PharmacyLicenseNumber,
		BusinessName:          r.BusinessName,
		DocumentURL:           r.DocumentURL,
		RatingSummary: models.RatingSummary{
			AverageRating:      r.AverageRating,
			NumReviews:         r.NumReviews,
			RatingDistribution: models.RatingDistribution(r.RatingDistribution),
		},
	}
}

type productRow struct {
	baseRow
	Name            string   `gorm:"size:255;not null"`
	Description     string   `gorm:"type:text"`
	Price           float64  `gorm:"type:decimal(10,2);not null"`
	DiscountedPrice *float64 `gorm:"type:decimal(10,2)"`
	Category        string   `gorm:"size:100;index"`
	ExpiryDate      time.Time
	Stock           int
	ImageURL        string
	Images          pq.StringArray `gorm:"type:text[]"`
	ExpiryPhoto     string
	VendorID        string `gorm:"type:uuid;not null;index"`
}

func (productRow) TableName() string { return "products" }

func toProductRow(p *models.Product) productRow {
	return productRow{
		baseRow:         baseRow{ID: p.ID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		Category:        p.Category,
		ExpiryDate:      p.ExpiryDate,
		Stock:           p.Stock,
		ImageURL:        p.ImageURL,
		Images:          pq.StringArray(p.Images),
		ExpiryPhoto:     p.ExpiryPhoto,
		VendorID:        p.VendorID,
	}
}

func (r productRow) model() models.Product {
	return models.Product{
		BaseModel:       models.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DiscountedPrice: r.DiscountedPrice,
		Category:        r.Category,
		ExpiryDate:      r.ExpiryDate,
		Stock:           r.Stock,
		ImageURL:        r.ImageURL,
		Images:          []string(r.Images),
		ExpiryPhoto:     r.ExpiryPhoto,
		VendorID:        r.VendorID,
	}
}

type cartRow struct {
	ID        string        `gorm:"type:uuid;primaryKey"`
	UserID    string        `gorm:"type:uuid;uniqueIndex;not null"`
	Items     []cartItemRow `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	UpdatedAt time.Time
}

func (cartRow) TableName() string { return "carts" }

type cartItemRow struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	CartID    string `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID string `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity  int    `gorm:"not null"`
	CreatedAt time.Time
}

func (cartItemRow) TableName() string { return "cart_items" }

func (r cartRow) model() models.Cart {
	items := make([]models.CartItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, models.CartItem{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return models.Cart{ID: r.ID, UserID: r.UserID, Items: items, UpdatedAt: r.UpdatedAt}
}

type orderRow struct {
	ID              string         `gorm:"type:uuid;primaryKey"`
	UserID          string         `gorm:"type:uuid;not null;index"`
	Items           []orderItemRow `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     float64        `gorm:"type:decimal(12,2);not null"`
	ShippingAddress string         `gorm:"type:text"`
	Status          string         `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time      `gorm:"index"`
}

func (orderRow) TableName() string { return "orders" }

type orderItemRow struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	OrderID   string `gorm:"type:uuid;not null;index"`
	Position  int
	ProductID string `gorm:"type:uuid;not null"`
	Quantity  int
	Price     float64 `gorm:"type:decimal(10,2)"`
}

func (orderItemRow) TableName() string { return "order_items" }

func toOrderRow(o *models.Order) orderRow {
	items := make([]orderItemRow, 0, len(o.Products))
	for i, it := range o.Products {
		items = append(items, orderItemRow{Position: i, ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return orderRow{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
	}
}

func (r orderRow) model() models.Order {
	items := make([]models.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, models.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return models.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		Products:        items,
		TotalAmount:     r.TotalAmount,
		ShippingAddress: r.ShippingAddress,
		Status:          models.OrderStatus(r.Status),
		CreatedAt:       r.CreatedAt,
	}
}

type reviewRow struct {
	baseRow
	UserID   string         `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_vendor"`
	VendorID string         `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_vendor;index"`
	Rating   int            `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Title    string         `gorm:"size:100"`
	Comment  string         `gorm:"size:500"`
	Images   pq.StringArray `gorm:"type:text[]"`
	Verified bool
	Votes    []reviewVoteRow `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

func (reviewRow) TableName() string { return "reviews" }

type reviewVoteRow struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ReviewID  string `gorm:"type:uuid;not null;uniqueIndex:idx_review_votes_review_user"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_review_votes_review_user"`
	Helpful   bool
	CreatedAt time.Time
}

func (reviewVoteRow) TableName() string { return "review_votes" }

func toReviewRow(r *models.Review) reviewRow {
	votes := make([]reviewVoteRow, 0, len(r.Helpful))
	for _, v := range r.Helpful {
		votes = append(votes, reviewVoteRow{ReviewID: r.ID, UserID: v.UserID, Helpful: v.Helpful})
	}
	return reviewRow{
		baseRow:  baseRow{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		UserID:   r.UserID,
		VendorID: r.VendorID,
		Rating:   r.Rating,
		Title:    r.Title,
		Comment:  r.Comment,
		Images:   pq.StringArray(r.Images),
		Verified: r.Verified,
		Votes:    votes,
	}
}

func (r reviewRow) model() models.Review {
	votes := make([]models.HelpfulVote, 0, len(r.Votes))
	for _, v := range r.Votes {
		votes = append(votes, models.HelpfulVote{UserID: v.UserID, Helpful: v.Helpful})
	}
	return models.Review{
		BaseModel: models.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		UserID:    r.UserID,
		VendorID:  r.VendorID,
		Rating:    r.Rating,
		Title:     r.Title,
		Comment:   r.Comment,
		Images:    append([]string{}, r.Images...),
		Helpful:   votes,
		Verified:  r.Verified,
	}
}

type waitlistRow struct {
	ID       string `gorm:"type:uuid;primaryKey"`
	Name     string `gorm:"size:255;not null"`
	Email    string `gorm:"size:255;not null;uniqueIndex:idx_waitlists_email_role"`
	Phone    string
	Location string
	Role     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_waitlists_email_role"`
	JoinedAt time.Time
}

func (waitlistRow) TableName() string { return "waitlists" }

func toWaitlistRow(e *models.WaitlistEntry) waitlistRow {
	return waitlistRow{
		ID: e.ID, Name: e.Name, Email: e.Email, Phone: e.Phone,
		Location: e.Location, Role: string(e.Role), JoinedAt: e.JoinedAt,
	}
}

func (r waitlistRow) model() models.WaitlistEntry {
	return models.WaitlistEntry{
		ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone,
		Location: r.Location, Role: models.Role(r.Role), JoinedAt: r.JoinedAt,
	}
}
