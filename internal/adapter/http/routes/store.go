package routes

import (
	"context"
	"fmt"

	"vetclinic/internal/adapter/persistence/gormstore"
	"vetclinic/internal/adapter/persistence/repository"
	"vetclinic/internal/infrastructure/config"
	"vetclinic/internal/infrastructure/database"
	"vetclinic/internal/usecase/interfaces"
)

// store is one consistent set of repositories sharing a transactor.
type store struct {
	appointments  interfaces.IAppointmentRepository
	consultations interfaces.IConsultationRepository
	invoices      interfaces.IInvoiceRepository
	pets          interfaces.IPetRepository
	clients       interfaces.IClientRepository
	tx            interfaces.ITransactor
	close         func() error
}

func openStore(ctx context.Context, cfg config.Config) (*store, error) {
	switch cfg.StorageDriver {
	case config.DriverDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx)
		if err != nil {
			return nil, err
		}
		return &store{
			appointments:  repository.NewAppointmentDynamoRepository(ddb),
			consultations: repository.NewConsultationDynamoRepository(ddb),
			invoices:      repository.NewInvoiceDynamoRepository(ddb),
			pets:          repository.NewPetDynamoRepository(ddb),
			clients:       repository.NewClientDynamoRepository(ddb),
			tx:            repository.NewDynamoTransactor(ddb),
			close:         func() error { return nil },
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.OpenGorm(cfg.StorageDriver, cfg)
		if err != nil {
			return nil, err
		}
		if err := gormstore.Migrate(db); err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &store{
			appointments:  gormstore.NewAppointmentRepository(db),
			consultations: gormstore.NewConsultationRepository(db),
			invoices:      gormstore.NewInvoiceRepository(db),
			pets:          gormstore.NewPetRepository(db),
			clients:       gormstore.NewClientRepository(db),
			tx:            gormstore.NewTransactor(db),
			close:         sqlDB.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
