package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"mundosolar.mx/backend/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "10012026_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Technician{}, &models.Client{},
					&models.SolarSystem{}, &models.Product{}, &models.InventoryMovement{})
			},
		},
		{
			ID: "10012026_create_order_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Payment{},
					&models.Invoice{})
			},
		},
		{
			ID: "12012026_create_maintenance_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.MaintenanceRecord{}, &models.MaintenanceStatusChange{},
					&models.MaintenanceAssignment{})
			},
		},
		{
			ID: "12012026_create_notification_table",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Notification{})
			},
		},
		{
			ID: "20012026_create_growatt_cache",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.GrowattDataCache{})
			},
		},
		{
			ID: "05022026_backfill_order_ledger_columns",
			Migrate: func(tx *gorm.DB) error {
				// Orders created before the ledger columns existed get a
				// consistent starting point.
				return tx.Exec(`UPDATE orders
					SET amount_paid = 0, balance_due = total, payment_status = 'PENDING'
					WHERE payment_status IS NULL OR payment_status = ''`).Error
			},
		},
	})

	return m.Migrate()
}
