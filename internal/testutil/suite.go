package testutil

import (
	"context"

	"github.com/hometuition/hometuition/internal/cache"
	"github.com/hometuition/hometuition/internal/config"
	"github.com/hometuition/hometuition/internal/domain/payment"
	"github.com/hometuition/hometuition/internal/domain/sequence"
	"github.com/hometuition/hometuition/internal/domain/student"
	"github.com/hometuition/hometuition/internal/logger"
	"github.com/hometuition/hometuition/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories shared by service tests.
type Stores struct {
	StudentRepo  student.Repository
	PaymentRepo  payment.Repository
	SequenceRepo sequence.Repository
}

// BaseServiceTestSuite provides common setup for all service test suites.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    *config.Configuration
	logger *logger.Logger
	stores Stores
	cache  cache.Cache
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupConfig()
	s.setupLogger()
	s.setupStores()
	s.cache = cache.NewInMemoryCache()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupConfig() {
	s.cfg = config.GetDefaultConfig()
}

func (s *BaseServiceTestSuite) setupLogger() {
	var err error
	s.logger, err = logger.NewLogger(s.cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		StudentRepo:  NewInMemoryStudentStore(),
		PaymentRepo:  NewInMemoryPaymentStore(),
		SequenceRepo: NewInMemorySequenceStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.StudentRepo.(*InMemoryStudentStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.SequenceRepo.(*InMemorySequenceStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}
