package repository

import (
	"context"

	"retail/internal/domain/model"
	repo "retail/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// カート明細を商品の現在値と一緒に取得
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartItemView, error) {
	var rows []model.CartItemView

	err := r.db.WithContext(ctx).
		Table("cart").
		Select("cart.id, cart.user_id, cart.product_id, cart.quantity, cart.added_at, " +
			"products.name AS product_name, products.price, products.stock_quantity, products.image_path").
		Joins("JOIN products ON products.id = cart.product_id AND products.deleted_at IS NULL").
		Where("cart.user_id = ?", userID).
		Order("cart.added_at desc").
		Order("cart.id desc").
		Scan(&rows).Error
	if err != nil {
		return []model.CartItemView{}, err
	}
	return rows, nil
}

// 注文確定用。カート表示と同じく削除済み商品の明細は除く
func (r *CartGormRepository) ListEntriesByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Select("cart.*").
		Joins("JOIN products ON products.id = cart.product_id AND products.deleted_at IS NULL").
		Where("cart.user_id = ?", userID).
		Order("cart.id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}
	return items, nil
}

// 明細を取得（他人の明細はErrNotFound）
func (r *CartGormRepository) FindByID(ctx context.Context, userID int64, id int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error
	if isNotFound(err) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 同一商品は数量加算（1文のupsert）
func (r *CartGormRepository) Upsert(ctx context.Context, userID int64, productID int64, qty int64) error {
	item := model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart.quantity + excluded.quantity"),
			}),
		}).
		Create(&item).Error
}

// 明細の数量を上書き
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, userID int64, id int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除。無くてもエラーにしない
func (r *CartGormRepository) Delete(ctx context.Context, userID int64, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.CartItem{}).Error
}

// ユーザーのカートを空にする
func (r *CartGormRepository) ClearByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
