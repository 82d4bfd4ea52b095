package repository

import (
	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
)

// NumberFilter narrows the phone number listing.
type NumberFilter struct {
	Search     string
	OperatorID uint
	CategoryID uint
	Status     string
	Page       int
	Limit      int
}

// NumberPage is one page of the number inventory listing.
type NumberPage struct {
	Numbers    []models.PhoneNumber `json:"numbers"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
}

// OperatorWithCounts is an operator with aggregate inventory counters.
type OperatorWithCounts struct {
	models.Operator
	NumbersCount     int64 `json:"numbers_count"`
	FreeNumbersCount int64 `json:"free_numbers_count"`
}

// CategoryWithCounts is a category with its inventory counter.
type CategoryWithCounts struct {
	models.Category
	NumbersCount int64 `json:"numbers_count"`
}

// NumberRepository defines read/update access to the number inventory.
// Creation, status changes and deletion go through the lifecycle service.
type NumberRepository interface {
	GetByID(id uint) (*models.PhoneNumber, error)
	GetByIDWithRelations(id uint) (*models.PhoneNumber, error)
	GetByNumber(number string) (*models.PhoneNumber, error)
	Update(number *models.PhoneNumber) error
	List(filter NumberFilter) (*NumberPage, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}

// OperatorRepository defines operator CRUD; deletion cascades are handled by
// the lifecycle service.
type OperatorRepository interface {
	Create(operator *models.Operator) error
	GetByID(id uint) (*models.Operator, error)
	Update(operator *models.Operator) error
	List(search string) ([]OperatorWithCounts, error)
	Count() (int64, error)
}

// CategoryRepository defines category CRUD.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	Update(category *models.Category) error
	List(search string) ([]CategoryWithCounts, error)
}

// SubscriberRepository defines subscriber CRUD.
type SubscriberRepository interface {
	Create(subscriber *models.Subscriber) error
	GetByID(id uint) (*models.Subscriber, error)
	Update(subscriber *models.Subscriber) error
	List() ([]models.Subscriber, error)
	Count() (int64, error)
}

// ContractRepository defines read access to contracts; mutations go through
// the lifecycle service.
type ContractRepository interface {
	GetByID(id uint) (*models.Contract, error)
	List() ([]models.Contract, error)
}

// HistoryRepository reads the status audit trail.
type HistoryRepository interface {
	ListByNumber(phoneNumberID uint) ([]models.StatusHistory, error)
}

// SettingRepository defines the key-value application settings store.
type SettingRepository interface {
	GetAll() (map[string]string, error)
	SetValue(key, value string) error
	GetInt(key string, def int) int
}

// ManagerRepository defines manager credential lookups.
type ManagerRepository interface {
	Create(manager *models.Manager) error
	GetByUsername(username string) (*models.Manager, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Number     NumberRepository
	Operator   OperatorRepository
	Category   CategoryRepository
	Subscriber SubscriberRepository
	Contract   ContractRepository
	History    HistoryRepository
	Setting    SettingRepository
	Manager    ManagerRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Number:     NewNumberRepository(db),
		Operator:   NewOperatorRepository(db),
		Category:   NewCategoryRepository(db),
		Subscriber: NewSubscriberRepository(db),
		Contract:   NewContractRepository(db),
		History:    NewHistoryRepository(db),
		Setting:    NewSettingRepository(db),
		Manager:    NewManagerRepository(db),
	}
}
