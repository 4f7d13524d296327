package storage

import (
	"database/sql"
	"fmt"

	"github.com/xener/energy-api/models"
)

// PostgresStorage implements the same port over database/sql. The original
// app declared this schema but shipped the map store; this driver exists for
// deployments that want durability, selected with STORAGE_DRIVER=postgres.
type PostgresStorage struct {
	DB *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{DB: db}
}

const userColumns = `id, COALESCE(firebase_uid, ''), email, name, energy_score, password_hash, totp_secret, totp_enabled, created_at`

func (s *PostgresStorage) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirebaseUID, &u.Email, &u.Name, &u.EnergyScore, &u.PasswordHash, &u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStorage) GetUser(id int) (*models.User, error) {
	return s.scanUser(s.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *PostgresStorage) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	return s.scanUser(s.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE firebase_uid = $1`, firebaseUID))
}

func (s *PostgresStorage) GetUserByEmail(email string) (*models.User, error) {
	return s.scanUser(s.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *PostgresStorage) CreateUser(u models.User) (*models.User, error) {
	row := s.DB.QueryRow(`
		INSERT INTO users (firebase_uid, email, name, energy_score, password_hash, totp_secret, totp_enabled)
		VALUES (NULLIF($1, ''), $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		u.FirebaseUID, u.Email, u.Name, u.EnergyScore, u.PasswordHash, u.TOTPSecret, u.TOTPEnabled)
	return s.scanUser(row)
}

func (s *PostgresStorage) UpdateUserEnergyScore(id int, score int) (*models.User, error) {
	row := s.DB.QueryRow(`
		UPDATE users SET energy_score = $1 WHERE id = $2
		RETURNING `+userColumns, score, id)
	return s.scanUser(row)
}

func (s *PostgresStorage) UpdateUserTOTP(id int, secret string, enabled bool) (*models.User, error) {
	row := s.DB.QueryRow(`
		UPDATE users SET totp_secret = $1, totp_enabled = $2 WHERE id = $3
		RETURNING `+userColumns, secret, enabled, id)
	return s.scanUser(row)
}

const applianceColumns = `id, user_id, name, type, specs, power_rating, star_rating, age, usage_hours_per_day, usage_start_time, usage_end_time, icon, created_at`

func scanAppliance(scan func(dest ...any) error) (*models.Appliance, error) {
	var a models.Appliance
	err := scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Specs, &a.PowerRating, &a.StarRating, &a.Age, &a.UsageHoursPerDay, &a.UsageStartTime, &a.UsageEndTime, &a.Icon, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan appliance: %w", err)
	}
	return &a, nil
}

func (s *PostgresStorage) GetAppliancesByUserID(userID int) ([]models.Appliance, error) {
	rows, err := s.DB.Query(`SELECT `+applianceColumns+` FROM appliances WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query appliances: %w", err)
	}
	defer rows.Close()

	out := []models.Appliance{}
	for rows.Next() {
		a, err := scanAppliance(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) GetAppliance(id int) (*models.Appliance, error) {
	row := s.DB.QueryRow(`SELECT `+applianceColumns+` FROM appliances WHERE id = $1`, id)
	return scanAppliance(row.Scan)
}

func (s *PostgresStorage) CreateAppliance(in models.InsertAppliance) (*models.Appliance, error) {
	starRating := in.StarRating
	if starRating == 0 {
		starRating = 1
	}
	icon := in.Icon
	if icon == "" {
		icon = "fas fa-plug"
	}
	row := s.DB.QueryRow(`
		INSERT INTO appliances (user_id, name, type, specs, power_rating, star_rating, age, usage_hours_per_day, usage_start_time, usage_end_time, icon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+applianceColumns,
		in.UserID, in.Name, in.Type, in.Specs, in.PowerRating, starRating, in.Age, in.UsageHoursPerDay, in.UsageStartTime, in.UsageEndTime, icon)
	return scanAppliance(row.Scan)
}

func (s *PostgresStorage) UpdateAppliance(id int, in models.UpdateAppliance) (*models.Appliance, error) {
	row := s.DB.QueryRow(`
		UPDATE appliances SET
			name = COALESCE($1, name),
			type = COALESCE($2, type),
			specs = COALESCE($3, specs),
			power_rating = COALESCE($4, power_rating),
			star_rating = COALESCE($5, star_rating),
			age = COALESCE($6, age),
			usage_hours_per_day = COALESCE($7, usage_hours_per_day),
			usage_start_time = COALESCE($8, usage_start_time),
			usage_end_time = COALESCE($9, usage_end_time),
			icon = COALESCE($10, icon)
		WHERE id = $11
		RETURNING `+applianceColumns,
		in.Name, in.Type, in.Specs, in.PowerRating, in.StarRating, in.Age, in.UsageHoursPerDay, in.UsageStartTime, in.UsageEndTime, in.Icon, id)
	return scanAppliance(row.Scan)
}

func (s *PostgresStorage) DeleteAppliance(id int) error {
	result, err := s.DB.Exec(`DELETE FROM appliances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appliance: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

const billColumns = `id, user_id, energy_supplier, monthly_bill, current_month, units_consumed, bill_total, bill_breakdown, tariff_rate, connection_type, user_address, area_tariff, due_date, is_paid, customer_id, meter_number, sanctioned_load, confidence, extracted_data, image_urls, created_at`

func scanBill(scan func(dest ...any) error) (*models.Bill, error) {
	var b models.Bill
	err := scan(&b.ID, &b.UserID, &b.EnergySupplier, &b.MonthlyBill, &b.CurrentMonth, &b.UnitsConsumed, &b.BillTotal, &b.BillBreakdown, &b.TariffRate, &b.ConnectionType, &b.UserAddress, &b.AreaTariff, &b.DueDate, &b.IsPaid, &b.CustomerID, &b.MeterNumber, &b.SanctionedLoad, &b.Confidence, &b.ExtractedData, &b.ImageURLs, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan bill: %w", err)
	}
	return &b, nil
}

func (s *PostgresStorage) GetBillsByUserID(userID int) ([]models.Bill, error) {
	rows, err := s.DB.Query(`SELECT `+billColumns+` FROM bills WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}
	defer rows.Close()

	out := []models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) GetBill(id int) (*models.Bill, error) {
	row := s.DB.QueryRow(`SELECT `+billColumns+` FROM bills WHERE id = $1`, id)
	return scanBill(row.Scan)
}

func (s *PostgresStorage) CreateBill(in models.InsertBill) (*models.Bill, error) {
	row := s.DB.QueryRow(`
		INSERT INTO bills (user_id, energy_supplier, monthly_bill, current_month, units_consumed, bill_total, bill_breakdown, tariff_rate, connection_type, user_address, area_tariff, due_date, is_paid, customer_id, meter_number, sanctioned_load, confidence, extracted_data, image_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING `+billColumns,
		in.UserID, in.EnergySupplier, in.MonthlyBill, in.CurrentMonth, in.UnitsConsumed, in.BillTotal, in.BillBreakdown, in.TariffRate, in.ConnectionType, in.UserAddress, in.AreaTariff, in.DueDate, in.IsPaid, in.CustomerID, in.MeterNumber, in.SanctionedLoad, in.Confidence, in.ExtractedData, in.ImageURLs)
	return scanBill(row.Scan)
}

func (s *PostgresStorage) GetLatestBillByUserID(userID int) (*models.Bill, error) {
	row := s.DB.QueryRow(`SELECT `+billColumns+` FROM bills WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, userID)
	return scanBill(row.Scan)
}

const tipColumns = `id, user_id, title, description, category, savings_amount, difficulty, is_bookmarked, created_at`

func scanTip(scan func(dest ...any) error) (*models.AiTip, error) {
	var tip models.AiTip
	err := scan(&tip.ID, &tip.UserID, &tip.Title, &tip.Description, &tip.Category, &tip.SavingsAmount, &tip.Difficulty, &tip.IsBookmarked, &tip.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan tip: %w", err)
	}
	return &tip, nil
}

func (s *PostgresStorage) GetTipsByUserID(userID int) ([]models.AiTip, error) {
	rows, err := s.DB.Query(`SELECT `+tipColumns+` FROM ai_tips WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query tips: %w", err)
	}
	defer rows.Close()

	out := []models.AiTip{}
	for rows.Next() {
		tip, err := scanTip(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *tip)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) CreateTip(in models.InsertAiTip) (*models.AiTip, error) {
	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = "Easy"
	}
	row := s.DB.QueryRow(`
		INSERT INTO ai_tips (user_id, title, description, category, savings_amount, difficulty, is_bookmarked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+tipColumns,
		in.UserID, in.Title, in.Description, in.Category, in.SavingsAmount, difficulty, in.IsBookmarked)
	return scanTip(row.Scan)
}

func (s *PostgresStorage) BookmarkTip(id int, isBookmarked bool) (*models.AiTip, error) {
	row := s.DB.QueryRow(`
		UPDATE ai_tips SET is_bookmarked = $1 WHERE id = $2
		RETURNING `+tipColumns, isBookmarked, id)
	return scanTip(row.Scan)
}

const usageColumns = `id, user_id, appliance_id, date, units_consumed, cost, created_at`

func scanUsage(scan func(dest ...any) error) (*models.UsageRecord, error) {
	var r models.UsageRecord
	err := scan(&r.ID, &r.UserID, &r.ApplianceID, &r.Date, &r.UnitsConsumed, &r.Cost, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan usage record: %w", err)
	}
	return &r, nil
}

func (s *PostgresStorage) queryUsage(where string, args ...any) ([]models.UsageRecord, error) {
	rows, err := s.DB.Query(`SELECT `+usageColumns+` FROM usage_records WHERE `+where+` ORDER BY date, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage records: %w", err)
	}
	defer rows.Close()

	out := []models.UsageRecord{}
	for rows.Next() {
		r, err := scanUsage(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) GetUsageRecordsByUserID(userID int, startDate, endDate string) ([]models.UsageRecord, error) {
	return s.queryUsage(`user_id = $1 AND ($2 = '' OR date >= $2) AND ($3 = '' OR date <= $3)`, userID, startDate, endDate)
}

func (s *PostgresStorage) GetUsageRecordsByAppliance(applianceID int, startDate, endDate string) ([]models.UsageRecord, error) {
	return s.queryUsage(`appliance_id = $1 AND ($2 = '' OR date >= $2) AND ($3 = '' OR date <= $3)`, applianceID, startDate, endDate)
}

func (s *PostgresStorage) CreateUsageRecord(in models.InsertUsageRecord) (*models.UsageRecord, error) {
	row := s.DB.QueryRow(`
		INSERT INTO usage_records (user_id, appliance_id, date, units_consumed, cost)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+usageColumns,
		in.UserID, in.ApplianceID, in.Date, in.UnitsConsumed, in.Cost)
	return scanUsage(row.Scan)
}
