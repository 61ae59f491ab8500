package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xolan/billable/internal/catalog"
	"github.com/xolan/billable/internal/config"
	"github.com/xolan/billable/internal/logging"
	"github.com/xolan/billable/internal/storage"
	"github.com/xolan/billable/internal/timer"
)

// Paths holds the file locations the services work on
type Paths struct {
	Storage string
	Timer   string
	Config  string
	Catalog string
	Ledger  string
}

// Services holds all service instances used by the application
type Services struct {
	Entry     *EntryService
	Timer     *TimerService
	Reconcile *ReconcileService
	Export    *ExportService
	Ledger    *LedgerService
	Catalog   *CatalogService
	Storage   *StorageService
	Config    *ConfigService

	Log *zap.Logger
}

// NewServices loads the configuration, logger and catalog from their default
// locations and wires the services together
func NewServices() (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Logging())
	if err != nil {
		return nil, err
	}

	paths, err := DefaultPaths(cfg)
	if err != nil {
		return nil, err
	}
	paths.Config = configPath

	cat, err := catalog.LoadOrEmpty(paths.Catalog)
	if err != nil {
		return nil, err
	}

	return NewServicesWithPaths(paths, cfg, cat, log), nil
}

// DefaultPaths resolves every file location for cfg
func DefaultPaths(cfg config.Config) (Paths, error) {
	var p Paths
	var err error
	if p.Storage, err = storage.GetStoragePath(); err != nil {
		return p, err
	}
	if p.Timer, err = timer.GetTimerPath(); err != nil {
		return p, err
	}
	if p.Config, err = config.GetConfigPath(); err != nil {
		return p, err
	}
	if p.Catalog, err = cfg.CatalogFile(); err != nil {
		return p, fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	if p.Ledger, err = cfg.LedgerFile(); err != nil {
		return p, fmt.Errorf("failed to resolve ledger path: %w", err)
	}
	return p, nil
}

// NewServicesWithPaths creates a new Services instance with custom paths
// (useful for testing). A nil catalog is treated as empty and a nil logger
// discards everything.
func NewServicesWithPaths(paths Paths, cfg config.Config, cat *catalog.Catalog, log *zap.Logger) *Services {
	if log == nil {
		log = zap.NewNop()
	}
	if cat == nil {
		cat = catalog.New()
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Warn("falling back to local time", zap.Error(err))
		loc = time.Local
	}

	store := storage.NewStore(paths.Storage)
	catalogService := NewCatalogService(paths.Catalog, cat)
	ledgerService := NewLedgerService(paths.Ledger, loc, log)
	v := &validator{catalog: catalogService, locks: ledgerService, loc: loc}

	reconcileService := &ReconcileService{
		store:     store,
		timerPath: paths.Timer,
		catalog:   catalogService,
		loc:       loc,
		log:       log.Named("reconcile"),
		now:       time.Now,
	}

	return &Services{
		Entry: &EntryService{
			store:    store,
			validate: v,
			loc:      loc,
			log:      log.Named("entry"),
			now:      time.Now,
			newID:    newID,
		},
		Timer: &TimerService{
			timerPath: paths.Timer,
			store:     store,
			validate:  v,
			log:       log.Named("timer"),
			now:       time.Now,
			newID:     newID,
		},
		Reconcile: reconcileService,
		Export: &ExportService{
			reconcile: reconcileService,
			ledger:    ledgerService,
			loc:       loc,
			now:       time.Now,
		},
		Ledger:  ledgerService,
		Catalog: catalogService,
		Storage: &StorageService{store: store},
		Config:  NewConfigService(paths.Config, cfg),
		Log:     log,
	}
}

// Close releases the ledger connection and flushes the logger
func (s *Services) Close() error {
	err := s.Ledger.Close()
	_ = s.Log.Sync()
	return err
}

func newID() string {
	return uuid.NewString()
}
