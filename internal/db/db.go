package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ajoca/Barberia/internal/config"
	"github.com/ajoca/Barberia/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.Review{},
		&models.Notification{},
		&models.WhatsAppMessage{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Última linha de defesa contra double-booking: intervalos meio-abertos
	// de agendamentos ativos do mesmo barbeiro não podem se sobrepor.
	// Violações chegam como SQLSTATE 23P01 (httperr.IsExclusionConflict).
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    barber_id WITH =,
                    tsrange(start_time, end_time, '[)') WITH &&
                )
                WHERE (status IN ('pending', 'confirmed'));
        EXCEPTION
            WHEN duplicate_object THEN NULL;
            WHEN duplicate_table THEN NULL;
        END $$;
    `)

	return db
}
