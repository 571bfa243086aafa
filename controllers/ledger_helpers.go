package controllers

import (
	"fmt"
	"time"

	"github.com/waraseoni/vtech-workshop-api/models"

	"gorm.io/gorm"
)

// applyLedgerEntry is the only code path that moves a client balance.
// It locks the client row, shifts the cached balance and appends the
// matching immutable LedgerEntry, all on the caller's transaction.
// DEBIT raises the outstanding balance, CREDIT lowers it.
func applyLedgerEntry(
	tx *gorm.DB,
	clientID uint,
	entryType models.LedgerEntryType,
	direction string,
	amount float64,
	refType string,
	refID uint,
	actorID uint,
	note string,
	entryDate time.Time,
) error {
	if amount < 0 {
		return fmt.Errorf("ledger amount must not be negative (got %v)", amount)
	}
	if direction != "DEBIT" && direction != "CREDIT" {
		return fmt.Errorf("unknown ledger direction %q", direction)
	}
	if amount == 0 {
		return nil
	}

	var client models.Client
	if err := lockForUpdate(tx).First(&client, clientID).Error; err != nil {
		return err
	}

	newBal := client.Balance + amount
	if direction == "CREDIT" {
		newBal = client.Balance - amount
	}

	if err := tx.Model(&models.Client{}).
		Where("id = ?", client.ID).
		Update("balance", newBal).Error; err != nil {
		return err
	}

	entry := models.LedgerEntry{
		ClientID:  client.ID,
		Type:      entryType,
		Direction: direction,
		Amount:    amount,
		RefType:   refType,
		RefID:     refID,
		ActorID:   actorID,
		Note:      note,
		EntryDate: entryDate,
	}
	return tx.Create(&entry).Error
}

// adjustStock moves a part's stock by delta inside the caller's transaction,
// refusing to go negative, and writes the audit row. The part row must be
// locked by the caller when racing writers are possible; this helper locks
// it again for safety.
func adjustStock(
	tx *gorm.DB,
	partID uint,
	delta int,
	reason string,
	refType string,
	refID uint,
	actorID uint,
) (*models.Part, error) {
	var part models.Part
	if err := lockForUpdate(tx).First(&part, partID).Error; err != nil {
		return nil, err
	}

	newStock := part.Stock + delta
	if newStock < 0 {
		return nil, fmt.Errorf("%w: part %q has %d, requested %d",
			models.ErrInsufficientStock, part.Name, part.Stock, -delta)
	}

	if err := tx.Model(&models.Part{}).
		Where("id = ?", part.ID).
		Update("stock", newStock).Error; err != nil {
		return nil, err
	}

	move := models.StockMovement{
		PartID:      part.ID,
		OldStock:    part.Stock,
		NewStock:    newStock,
		Delta:       delta,
		Reason:      reason,
		RefType:     refType,
		RefID:       refID,
		CreatedByID: actorID,
	}
	if err := tx.Create(&move).Error; err != nil {
		return nil, err
	}

	part.Stock = newStock
	return &part, nil
}
