package handler

import (
	"github.com/sectioncms/internal/service"
	"github.com/sectioncms/internal/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	sections   *service.Sections
	stockQuote *service.StockQuoteService
	storage    storage.Storage
	logger     *logrus.Logger
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, store storage.Storage, logger *logrus.Logger) *API {
	return &API{
		db:         db,
		sections:   service.NewSections(db),
		stockQuote: service.NewStockQuoteService(db),
		storage:    store,
		logger:     logger,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Sections exposes the content services, the router mounts one handler per section.
func (a *API) Sections() *service.Sections {
	return a.sections
}

// Logger returns the request logger.
func (a *API) Logger() *logrus.Logger {
	return a.logger
}
