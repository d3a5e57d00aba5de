package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockpile/pkg/migration"
)

func init() {
	migration.Register("20250101000000_create_users_table", &createUsersTable{})
	migration.Register("20250101000001_create_orders_table", &createOrdersTable{})
}

// Snapshots of the tables as first created. They must not follow later
// changes to app/models.

type userV1 struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:100;uniqueIndex;not null"`
	Password  string `gorm:"size:255;not null"`
	Role      string `gorm:"size:20;not null;default:Clerk"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userV1) TableName() string { return "users" }

type orderV1 struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;index"`
	ProductID   string          `gorm:"size:64;not null;index"`
	Quantity    int             `gorm:"not null"`
	OrderDate   time.Time       `gorm:"not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      string          `gorm:"size:20;not null;default:Pending;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (orderV1) TableName() string { return "orders" }

type createUsersTable struct{}

func (*createUsersTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&userV1{})
}

func (*createUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&userV1{})
}

type createOrdersTable struct{}

func (*createOrdersTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&orderV1{})
}

func (*createOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&orderV1{})
}
