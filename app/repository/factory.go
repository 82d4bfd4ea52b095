package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetNumberRepository returns the phone number repository instance
func (f *Factory) GetNumberRepository() NumberRepository {
	return f.GetRepositories().Number
}

// GetOperatorRepository returns the operator repository instance
func (f *Factory) GetOperatorRepository() OperatorRepository {
	return f.GetRepositories().Operator
}

// GetCategoryRepository returns the category repository instance
func (f *Factory) GetCategoryRepository() CategoryRepository {
	return f.GetRepositories().Category
}

// GetSubscriberRepository returns the subscriber repository instance
func (f *Factory) GetSubscriberRepository() SubscriberRepository {
	return f.GetRepositories().Subscriber
}

// GetContractRepository returns the contract repository instance
func (f *Factory) GetContractRepository() ContractRepository {
	return f.GetRepositories().Contract
}

// GetHistoryRepository returns the status history repository instance
func (f *Factory) GetHistoryRepository() HistoryRepository {
	return f.GetRepositories().History
}

// GetSettingRepository returns the setting repository instance
func (f *Factory) GetSettingRepository() SettingRepository {
	return f.GetRepositories().Setting
}

// GetManagerRepository returns the manager repository instance
func (f *Factory) GetManagerRepository() ManagerRepository {
	return f.GetRepositories().Manager
}

// Global factory instance
var globalFactory *Factory
var factoryMu sync.Mutex

// InitializeFactory initializes the global repository factory. Calling it
// again replaces the factory, which tests use to point repositories at a
// fresh database.
func InitializeFactory(db *gorm.DB) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	globalFactory = NewFactory(db)
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
