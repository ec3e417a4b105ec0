// internal/service/inventory/infrastructure/gorm_store.go
package infrastructure

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"commerce/internal/service/inventory/domain"
)

// StockModel 对应数据库中的 inventory 表。
type StockModel struct {
	ProductID string `gorm:"primaryKey;column:product_id"`
	Quantity  int
	Reserved  int `gorm:"column:reserved_quantity"`
	Version   int64
	UpdatedAt time.Time
}

// TableName 指定 GORM 应该使用的表名
func (StockModel) TableName() string {
	return "inventory"
}

// GormStockStore 是 StockStore 的 MySQL 实现。
// 乐观锁通过 `WHERE version = ?` 的条件更新实现，
// 更新行数为 0 即判定冲突。
type GormStockStore struct {
	db *gorm.DB
}

// OpenGormStockStore 连接 MySQL 并自动建表。
func OpenGormStockStore(dsn string) (*GormStockStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mysql")
	}
	if err := db.AutoMigrate(&StockModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate inventory table")
	}
	return &GormStockStore{db: db}, nil
}

func NewGormStockStore(db *gorm.DB) *GormStockStore {
	return &GormStockStore{db: db}
}

func (s *GormStockStore) Get(ctx context.Context, productID string) (*domain.StockRecord, error) {
	var model StockModel
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to load stock record")
	}
	return toDomainStock(&model), nil
}

func (s *GormStockStore) Create(ctx context.Context, record *domain.StockRecord) error {
	model := toStockModel(record)
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrInvalidState
		}
		return errors.Wrap(err, "failed to create stock record")
	}
	return nil
}

func (s *GormStockStore) CompareAndSave(ctx context.Context, record *domain.StockRecord) error {
	result := s.db.WithContext(ctx).Model(&StockModel{}).
		Where("product_id = ? AND version = ?", record.ProductID, record.Version).
		Updates(map[string]interface{}{
			"quantity":          record.Quantity,
			"reserved_quantity": record.Reserved,
			"version":           record.Version + 1,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to save stock record")
	}
	if result.RowsAffected == 0 {
		// 没更新到行：要么版本被推进了，要么记录不存在
		var count int64
		if err := s.db.WithContext(ctx).Model(&StockModel{}).
			Where("product_id = ?", record.ProductID).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check stock record existence")
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}

	record.Version++
	return nil
}

func (s *GormStockStore) List(ctx context.Context) ([]*domain.StockRecord, error) {
	var models []StockModel
	if err := s.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stock records")
	}
	records := make([]*domain.StockRecord, 0, len(models))
	for i := range models {
		records = append(records, toDomainStock(&models[i]))
	}
	return records, nil
}

func toDomainStock(m *StockModel) *domain.StockRecord {
	return &domain.StockRecord{
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Reserved:  m.Reserved,
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}
}

func toStockModel(r *domain.StockRecord) *StockModel {
	return &StockModel{
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Reserved:  r.Reserved,
		Version:   r.Version,
		UpdatedAt: r.UpdatedAt,
	}
}
