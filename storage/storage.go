package storage

import (
	"errors"

	"github.com/xener/energy-api/models"
)

// ErrNotFound is returned by every lookup that misses, regardless of driver.
var ErrNotFound = errors.New("not found")

// Storage is the persistence port for the API. The default implementation is
// the in-memory map store; a Postgres driver with identical semantics can be
// selected via STORAGE_DRIVER=postgres.
type Storage interface {
	// Users
	GetUser(id int) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(u models.User) (*models.User, error)
	UpdateUserEnergyScore(id int, score int) (*models.User, error)
	UpdateUserTOTP(id int, secret string, enabled bool) (*models.User, error)

	// Appliances
	GetAppliancesByUserID(userID int) ([]models.Appliance, error)
	GetAppliance(id int) (*models.Appliance, error)
	CreateAppliance(in models.InsertAppliance) (*models.Appliance, error)
	UpdateAppliance(id int, in models.UpdateAppliance) (*models.Appliance, error)
	DeleteAppliance(id int) error

	// Bills
	GetBillsByUserID(userID int) ([]models.Bill, error)
	GetBill(id int) (*models.Bill, error)
	CreateBill(in models.InsertBill) (*models.Bill, error)
	GetLatestBillByUserID(userID int) (*models.Bill, error)

	// AI tips
	GetTipsByUserID(userID int) ([]models.AiTip, error)
	CreateTip(in models.InsertAiTip) (*models.AiTip, error)
	BookmarkTip(id int, isBookmarked bool) (*models.AiTip, error)

	// Usage records. Date bounds are inclusive YYYY-MM-DD strings; empty
	// means unbounded on that side. Results come back date-ascending.
	GetUsageRecordsByUserID(userID int, startDate, endDate string) ([]models.UsageRecord, error)
	GetUsageRecordsByAppliance(applianceID int, startDate, endDate string) ([]models.UsageRecord, error)
	CreateUsageRecord(in models.InsertUsageRecord) (*models.UsageRecord, error)
}
