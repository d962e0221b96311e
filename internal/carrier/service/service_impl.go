package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	carrierdomain "github.com/yemtakip/yemtakip/internal/carrier/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) carrierdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("carrier.service"),
		genID: p.GenID,
	}
}

func (s *Service) EnsureByName(ctx context.Context, db *gorm.DB, name string) (*carrierdomain.Carrier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, carrierdomain.ErrInvalidName
	}

	var carrier carrierdomain.Carrier
	err := db.WithContext(ctx).
		Where("name = ? AND deleted_at IS NULL", name).
		Limit(1).
		Find(&carrier).Error
	if err != nil {
		return nil, err
	}
	if carrier.ID != 0 {
		return &carrier, nil
	}

	now := time.Now().UTC()
	carrier = carrierdomain.Carrier{
		ID:          s.genID.Generate(),
		Name:        name,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Balance:     decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(&carrier).Error; err != nil {
		return nil, err
	}
	return &carrier, nil
}

func (s *Service) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*carrierdomain.Carrier, error) {
	if id == 0 {
		return nil, carrierdomain.ErrInvalidCarrier
	}
	var carrier carrierdomain.Carrier
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		Limit(1).
		Find(&carrier).Error
	if err != nil {
		return nil, err
	}
	if carrier.ID == 0 {
		return nil, nil
	}
	return &carrier, nil
}

func (s *Service) List(ctx context.Context, db *gorm.DB) ([]carrierdomain.Carrier, error) {
	var carriers []carrierdomain.Carrier
	err := db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("name asc").
		Find(&carriers).Error
	if err != nil {
		return nil, err
	}
	return carriers, nil
}

func (s *Service) Post(ctx context.Context, db *gorm.DB, entry carrierdomain.PostEntry) (*carrierdomain.CarrierTransaction, error) {
	if entry.CarrierID == 0 {
		return nil, carrierdomain.ErrInvalidCarrier
	}
	switch entry.Type {
	case carrierdomain.CarrierTransactionTypeDebit, carrierdomain.CarrierTransactionTypeCredit:
	default:
		return nil, carrierdomain.ErrInvalidType
	}
	if !entry.Amount.IsPositive() {
		return nil, carrierdomain.ErrInvalidAmount
	}
	switch entry.ReferenceType {
	case carrierdomain.CarrierReferenceTypeDelivery, carrierdomain.CarrierReferenceTypePayment:
	default:
		return nil, carrierdomain.ErrInvalidReference
	}
	if entry.ReferenceID == 0 {
		return nil, carrierdomain.ErrInvalidReference
	}

	txn := carrierdomain.CarrierTransaction{
		ID:              s.genID.Generate(),
		CarrierID:       entry.CarrierID,
		Type:            entry.Type,
		Amount:          entry.Amount,
		Description:     entry.Description,
		ReferenceType:   entry.ReferenceType,
		ReferenceID:     entry.ReferenceID,
		TransactionDate: entry.TransactionDate.UTC(),
		CreatedAt:       time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *Service) Recalculate(ctx context.Context, db *gorm.DB, carrierID snowflake.ID) (*carrierdomain.Carrier, error) {
	if carrierID == 0 {
		return nil, carrierdomain.ErrInvalidCarrier
	}

	var txns []carrierdomain.CarrierTransaction
	err := db.WithContext(ctx).
		Where("carrier_id = ? AND deleted_at IS NULL", carrierID).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, txn := range txns {
		switch txn.Type {
		case carrierdomain.CarrierTransactionTypeDebit:
			totalDebit = totalDebit.Add(txn.Amount)
		case carrierdomain.CarrierTransactionTypeCredit:
			totalCredit = totalCredit.Add(txn.Amount)
		}
	}

	err = db.WithContext(ctx).Model(&carrierdomain.Carrier{}).
		Where("id = ?", carrierID).
		Updates(map[string]any{
			"total_debit":  totalDebit,
			"total_credit": totalCredit,
			"balance":      totalDebit.Sub(totalCredit),
			"updated_at":   time.Now().UTC(),
		}).Error
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, db, carrierID)
}

func (s *Service) SoftDeleteByReference(ctx context.Context, db *gorm.DB, refType carrierdomain.CarrierReferenceType, refID snowflake.ID) ([]snowflake.ID, error) {
	return s.mark(ctx, db, refType, refID, "deleted_at IS NULL", time.Now().UTC())
}

func (s *Service) RestoreByReference(ctx context.Context, db *gorm.DB, refType carrierdomain.CarrierReferenceType, refID snowflake.ID) ([]snowflake.ID, error) {
	return s.mark(ctx, db, refType, refID, "deleted_at IS NOT NULL", nil)
}

func (s *Service) HardDeleteByReference(ctx context.Context, db *gorm.DB, refType carrierdomain.CarrierReferenceType, refID snowflake.ID) ([]snowflake.ID, error) {
	ids, err := s.carrierIDsForReference(ctx, db, refType, refID, "")
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	err = db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Delete(&carrierdomain.CarrierTransaction{}).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Service) UpsertVehicle(ctx context.Context, db *gorm.DB, plate string, carrierID *snowflake.ID) (*carrierdomain.Vehicle, error) {
	plate = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
	if plate == "" {
		return nil, carrierdomain.ErrInvalidPlate
	}

	var vehicle carrierdomain.Vehicle
	err := db.WithContext(ctx).
		Where("plate = ?", plate).
		Limit(1).
		Find(&vehicle).Error
	if err != nil {
		return nil, err
	}
	if vehicle.ID != 0 {
		if carrierID != nil && vehicle.CarrierID == nil {
			if err := db.WithContext(ctx).Model(&carrierdomain.Vehicle{}).
				Where("id = ?", vehicle.ID).
				Update("carrier_id", carrierID).Error; err != nil {
				return nil, err
			}
			vehicle.CarrierID = carrierID
		}
		return &vehicle, nil
	}

	vehicle = carrierdomain.Vehicle{
		ID:        s.genID.Generate(),
		Plate:     plate,
		CarrierID: carrierID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *Service) Transactions(ctx context.Context, db *gorm.DB, carrierID snowflake.ID) ([]carrierdomain.CarrierTransaction, error) {
	if carrierID == 0 {
		return nil, carrierdomain.ErrInvalidCarrier
	}
	var txns []carrierdomain.CarrierTransaction
	err := db.WithContext(ctx).
		Where("carrier_id = ? AND deleted_at IS NULL", carrierID).
		Order("transaction_date asc, id asc").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Service) mark(ctx context.Context, db *gorm.DB, refType carrierdomain.CarrierReferenceType, refID snowflake.ID, state string, deletedAt any) ([]snowflake.ID, error) {
	ids, err := s.carrierIDsForReference(ctx, db, refType, refID, state)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	err = db.WithContext(ctx).Model(&carrierdomain.CarrierTransaction{}).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Where(state).
		Update("deleted_at", deletedAt).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Service) carrierIDsForReference(ctx context.Context, db *gorm.DB, refType carrierdomain.CarrierReferenceType, refID snowflake.ID, state string) ([]snowflake.ID, error) {
	stmt := db.WithContext(ctx).Model(&carrierdomain.CarrierTransaction{}).
		Distinct("carrier_id").
		Where("reference_type = ? AND reference_id = ?", refType, refID)
	if state != "" {
		stmt = stmt.Where(state)
	}

	var ids []snowflake.ID
	if err := stmt.Pluck("carrier_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
