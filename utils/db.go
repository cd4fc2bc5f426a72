package utils

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zapkash/vendor-console/config"
	"github.com/zapkash/vendor-console/models"
)

// CreateCampaign persists a new campaign with its allocation tiers
func CreateCampaign(campaign *models.Campaign) error {
	return config.DB.Create(campaign).Error
}

// GetCampaignByID retrieves one of the vendor's campaigns with its tiers
func GetCampaignByID(vendorID, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := config.DB.Preload("Allocations", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ? AND vendor_id = ?", id, vendorID).First(&campaign).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundError("Campaign not found", err)
	}
	if err != nil {
		return nil, WrapError(err, "failed to load campaign")
	}
	return &campaign, nil
}

// UpdateCampaign saves campaign changes
func UpdateCampaign(campaign *models.Campaign) error {
	return config.DB.Save(campaign).Error
}

// ReplaceAllocations swaps a campaign's saved tiers for a new set
func ReplaceAllocations(campaignID uint, allocations []models.Allocation) error {
	if err := config.DB.Where("campaign_id = ?", campaignID).Delete(&models.Allocation{}).Error; err != nil {
		return err
	}
	if len(allocations) == 0 {
		return nil
	}
	for i := range allocations {
		allocations[i].CampaignID = campaignID
		allocations[i].Position = i
	}
	return config.DB.Create(&allocations).Error
}

// GetVendorCampaigns retrieves a page of the vendor's campaigns
func GetVendorCampaigns(vendorID uint, page, limit int) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	var total int64

	query := config.DB.Model(&models.Campaign{}).Where("vendor_id = ?", vendorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Allocations").Order("created_at DESC").Limit(limit).Offset(offset).Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// CreateOrder records one tier issuance
func CreateOrder(order *models.Order) error {
	return config.DB.Create(order).Error
}

// GetOrderByID retrieves one of the vendor's orders
func GetOrderByID(vendorID, id uint) (*models.Order, error) {
	var order models.Order
	err := config.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundError("Order not found", err)
	}
	if err != nil {
		return nil, WrapError(err, "failed to load order")
	}
	return &order, nil
}

// GetVendorOrders retrieves a page of the vendor's orders, newest first
func GetVendorOrders(vendorID uint, campaignID *uint, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := config.DB.Model(&models.Order{}).Where("vendor_id = ?", vendorID)
	if campaignID != nil {
		query = query.Where("campaign_id = ?", *campaignID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpsertWalletSnapshot refreshes the cached platform wallet for a vendor
func UpsertWalletSnapshot(vendorID uint, balance, locked, available float64) (*models.WalletSnapshot, error) {
	var snapshot models.WalletSnapshot
	if err := config.DB.Where("vendor_id = ?", vendorID).First(&snapshot).Error; err != nil {
		snapshot = models.WalletSnapshot{VendorID: vendorID}
	}
	snapshot.Balance = balance
	snapshot.LockedBalance = locked
	snapshot.AvailableBalance = available
	snapshot.RefreshedAt = time.Now()

	if err := config.DB.Save(&snapshot).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// CreateWalletTransaction records a console-initiated wallet movement
func CreateWalletTransaction(txn *models.WalletTransaction) error {
	return config.DB.Create(txn).Error
}

// GetVendorTransactions retrieves a page of the vendor's mirrored wallet movements
func GetVendorTransactions(vendorID uint, page, limit int) ([]models.WalletTransaction, int64, error) {
	var transactions []models.WalletTransaction
	var total int64

	query := config.DB.Model(&models.WalletTransaction{}).Where("vendor_id = ?", vendorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// CreateExportJob persists a new export job
func CreateExportJob(job *models.ExportJob) error {
	return config.DB.Create(job).Error
}

// GetExportJob retrieves one of the vendor's export jobs with its parts
func GetExportJob(vendorID uint, id string) (*models.ExportJob, error) {
	var job models.ExportJob
	err := config.DB.Preload("Parts", func(db *gorm.DB) *gorm.DB {
		return db.Order("part ASC")
	}).Where("id = ? AND vendor_id = ?", id, vendorID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundError("Export job not found", err)
	}
	if err != nil {
		return nil, WrapError(err, "failed to load export job")
	}
	return &job, nil
}

// UpdateExportJob saves export job changes
func UpdateExportJob(job *models.ExportJob) error {
	return config.DB.Save(job).Error
}

// AddExportPart records one finished export part against its job
func AddExportPart(part *models.ExportPart) error {
	return config.DB.Create(part).Error
}
