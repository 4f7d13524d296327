package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/xener/energy-api/models"
)

// MemStorage is the default store: plain maps behind a single lock, one
// auto-increment id counter shared by every entity, linear-scan filters.
// Nothing survives a restart.
type MemStorage struct {
	mu           sync.RWMutex
	users        map[int]*models.User
	appliances   map[int]*models.Appliance
	bills        map[int]*models.Bill
	aiTips       map[int]*models.AiTip
	usageRecords map[int]*models.UsageRecord
	currentID    int
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:        make(map[int]*models.User),
		appliances:   make(map[int]*models.Appliance),
		bills:        make(map[int]*models.Bill),
		aiTips:       make(map[int]*models.AiTip),
		usageRecords: make(map[int]*models.UsageRecord),
		currentID:    1,
	}
}

func (s *MemStorage) nextID() int {
	id := s.currentID
	s.currentID++
	return id
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func (s *MemStorage) GetUser(id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *MemStorage) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.FirebaseUID == firebaseUID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStorage) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStorage) CreateUser(u models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID()
	u.CreatedAt = time.Now()
	s.users[u.ID] = &u
	copied := u
	return &copied, nil
}

func (s *MemStorage) UpdateUserEnergyScore(id int, score int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.EnergyScore = score
	copied := *u
	return &copied, nil
}

func (s *MemStorage) UpdateUserTOTP(id int, secret string, enabled bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.TOTPSecret = secret
	u.TOTPEnabled = enabled
	copied := *u
	return &copied, nil
}

// ---------------------------------------------------------------------------
// Appliances
// ---------------------------------------------------------------------------

func (s *MemStorage) GetAppliancesByUserID(userID int) ([]models.Appliance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Appliance{}
	for _, a := range s.appliances {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStorage) GetAppliance(id int) (*models.Appliance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appliances[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *MemStorage) CreateAppliance(in models.InsertAppliance) (*models.Appliance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := models.Appliance{
		ID:               s.nextID(),
		UserID:           in.UserID,
		Name:             in.Name,
		Type:             in.Type,
		Specs:            in.Specs,
		PowerRating:      in.PowerRating,
		StarRating:       in.StarRating,
		Age:              in.Age,
		UsageHoursPerDay: in.UsageHoursPerDay,
		UsageStartTime:   in.UsageStartTime,
		UsageEndTime:     in.UsageEndTime,
		Icon:             in.Icon,
		CreatedAt:        time.Now(),
	}
	if a.StarRating == 0 {
		a.StarRating = 1
	}
	if a.Icon == "" {
		a.Icon = "fas fa-plug"
	}
	s.appliances[a.ID] = &a
	copied := a
	return &copied, nil
}

func (s *MemStorage) UpdateAppliance(id int, in models.UpdateAppliance) (*models.Appliance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appliances[id]
	if !ok {
		return nil, ErrNotFound
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.Specs != nil {
		a.Specs = *in.Specs
	}
	if in.PowerRating != nil {
		a.PowerRating = *in.PowerRating
	}
	if in.StarRating != nil {
		a.StarRating = *in.StarRating
	}
	if in.Age != nil {
		a.Age = *in.Age
	}
	if in.UsageHoursPerDay != nil {
		a.UsageHoursPerDay = *in.UsageHoursPerDay
	}
	if in.UsageStartTime != nil {
		a.UsageStartTime = *in.UsageStartTime
	}
	if in.UsageEndTime != nil {
		a.UsageEndTime = *in.UsageEndTime
	}
	if in.Icon != nil {
		a.Icon = *in.Icon
	}
	copied := *a
	return &copied, nil
}

func (s *MemStorage) DeleteAppliance(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appliances[id]; !ok {
		return ErrNotFound
	}
	delete(s.appliances, id)
	return nil
}

// ---------------------------------------------------------------------------
// Bills
// ---------------------------------------------------------------------------

func (s *MemStorage) GetBillsByUserID(userID int) ([]models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Bill{}
	for _, b := range s.bills {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStorage) GetBill(id int) (*models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bills[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *MemStorage) CreateBill(in models.InsertBill) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := models.Bill{
		ID:             s.nextID(),
		UserID:         in.UserID,
		EnergySupplier: in.EnergySupplier,
		MonthlyBill:    in.MonthlyBill,
		CurrentMonth:   in.CurrentMonth,
		UnitsConsumed:  in.UnitsConsumed,
		BillTotal:      in.BillTotal,
		BillBreakdown:  in.BillBreakdown,
		TariffRate:     in.TariffRate,
		ConnectionType: in.ConnectionType,
		UserAddress:    in.UserAddress,
		AreaTariff:     in.AreaTariff,
		DueDate:        in.DueDate,
		IsPaid:         in.IsPaid,
		CustomerID:     in.CustomerID,
		MeterNumber:    in.MeterNumber,
		SanctionedLoad: in.SanctionedLoad,
		Confidence:     in.Confidence,
		ExtractedData:  in.ExtractedData,
		ImageURLs:      in.ImageURLs,
		CreatedAt:      time.Now(),
	}
	s.bills[b.ID] = &b
	copied := b
	return &copied, nil
}

func (s *MemStorage) GetLatestBillByUserID(userID int) (*models.Bill, error) {
	bills, _ := s.GetBillsByUserID(userID)
	if len(bills) == 0 {
		return nil, ErrNotFound
	}
	sort.Slice(bills, func(i, j int) bool {
		if !bills[i].CreatedAt.Equal(bills[j].CreatedAt) {
			return bills[i].CreatedAt.After(bills[j].CreatedAt)
		}
		return bills[i].ID > bills[j].ID
	})
	return &bills[0], nil
}

// ---------------------------------------------------------------------------
// AI tips
// ---------------------------------------------------------------------------

func (s *MemStorage) GetTipsByUserID(userID int) ([]models.AiTip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.AiTip{}
	for _, tip := range s.aiTips {
		if tip.UserID == userID {
			out = append(out, *tip)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStorage) CreateTip(in models.InsertAiTip) (*models.AiTip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tip := models.AiTip{
		ID:            s.nextID(),
		UserID:        in.UserID,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		SavingsAmount: in.SavingsAmount,
		Difficulty:    in.Difficulty,
		IsBookmarked:  in.IsBookmarked,
		CreatedAt:     time.Now(),
	}
	if tip.Difficulty == "" {
		tip.Difficulty = "Easy"
	}
	s.aiTips[tip.ID] = &tip
	copied := tip
	return &copied, nil
}

func (s *MemStorage) BookmarkTip(id int, isBookmarked bool) (*models.AiTip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tip, ok := s.aiTips[id]
	if !ok {
		return nil, ErrNotFound
	}
	tip.IsBookmarked = isBookmarked
	copied := *tip
	return &copied, nil
}

// ---------------------------------------------------------------------------
// Usage records
// ---------------------------------------------------------------------------

func (s *MemStorage) GetUsageRecordsByUserID(userID int, startDate, endDate string) ([]models.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.UsageRecord{}
	for _, r := range s.usageRecords {
		if r.UserID == userID && inDateRange(r.Date, startDate, endDate) {
			out = append(out, *r)
		}
	}
	sortUsageByDate(out)
	return out, nil
}

func (s *MemStorage) GetUsageRecordsByAppliance(applianceID int, startDate, endDate string) ([]models.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.UsageRecord{}
	for _, r := range s.usageRecords {
		if r.ApplianceID == applianceID && inDateRange(r.Date, startDate, endDate) {
			out = append(out, *r)
		}
	}
	sortUsageByDate(out)
	return out, nil
}

func (s *MemStorage) CreateUsageRecord(in models.InsertUsageRecord) (*models.UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.UsageRecord{
		ID:            s.nextID(),
		UserID:        in.UserID,
		ApplianceID:   in.ApplianceID,
		Date:          in.Date,
		UnitsConsumed: in.UnitsConsumed,
		Cost:          in.Cost,
		CreatedAt:     time.Now(),
	}
	s.usageRecords[r.ID] = &r
	copied := r
	return &copied, nil
}

// YYYY-MM-DD compares correctly as a plain string.
func inDateRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

func sortUsageByDate(records []models.UsageRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].ID < records[j].ID
	})
}
