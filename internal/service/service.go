package service

import (
	"github.com/hometuition/hometuition/internal/cache"
	"github.com/hometuition/hometuition/internal/config"
	"github.com/hometuition/hometuition/internal/domain/payment"
	"github.com/hometuition/hometuition/internal/domain/sequence"
	"github.com/hometuition/hometuition/internal/domain/student"
	"github.com/hometuition/hometuition/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	StudentRepo  student.Repository
	PaymentRepo  payment.Repository
	SequenceRepo sequence.Repository
}
