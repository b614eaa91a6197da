package product

import (
	"context"
	"fmt"

	"catalog-manager/core/reconcile"
	"catalog-manager/feature/product/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reconciler merges a validated request into a product's persisted colors.
// It runs inside the caller's transaction and records which image files
// become orphaned; those are removed only after the commit.
type reconciler struct {
	tx        *gorm.DB
	productID uuid.UUID
	mainSlot  int

	merged   []*models.Color
	orphans  []string
	seen     map[string]struct{}
	colors   reconcile.PlanSummary
	variants reconcile.PlanSummary
}

func newReconciler(tx *gorm.DB, productID uuid.UUID, entries []ColorEntry) *reconciler {
	return &reconciler{
		tx:        tx,
		productID: productID,
		mainSlot:  mainSlot(entries),
		merged:    make([]*models.Color, len(entries)),
		seen:      make(map[string]struct{}),
	}
}

// mainSlot is the submission index of the first color flagged as main,
// falling back to the first color.
func mainSlot(entries []ColorEntry) int {
	for i, e := range entries {
		if e.Input().IsMain {
			return i
		}
	}
	return 0
}

func colorKey(c *models.Color) uuid.UUID     { return c.ID }
func variantKey(v *models.Variant) uuid.UUID { return v.ID }

// apply reconciles existing against entries. existing is nil for a new product.
func (r *reconciler) apply(ctx context.Context, existing []*models.Color, entries []ColorEntry) error {
	plan := reconcile.Diff(existing, colorKey, entries, ColorEntry.Identity)
	if _, err := reconcile.ApplyPlan(ctx, plan, r); err != nil {
		return err
	}
	r.colors = plan.Summary
	return nil
}

// Colors returns the merged colors in submitted order.
func (r *reconciler) Colors() []*models.Color {
	return r.merged
}

func (r *reconciler) Create(ctx context.Context, slot int, desired ColorEntry) error {
	in := desired.Input()
	color := &models.Color{
		ID:        uuid.New(),
		ProductID: r.productID,
		Name:      in.Name,
		IsMain:    slot == r.mainSlot,
		Position:  slot,
	}
	if err := r.tx.Omit(clause.Associations).Create(color).Error; err != nil {
		return fmt.Errorf("failed to create color: %w", err)
	}
	if err := r.reconcileVariants(ctx, color, nil, in.Variants); err != nil {
		return err
	}
	r.merged[slot] = color
	return nil
}

func (r *reconciler) Update(ctx context.Context, slot int, existing *models.Color, desired ColorEntry) error {
	in := desired.Input()
	existing.Name = in.Name
	existing.IsMain = slot == r.mainSlot
	existing.Position = slot

	err := r.tx.Model(&models.Color{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"name":     existing.Name,
			"is_main":  existing.IsMain,
			"position": existing.Position,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update color: %w", err)
	}

	current := make([]*models.Variant, len(existing.Variants))
	for i := range existing.Variants {
		current[i] = &existing.Variants[i]
	}
	if err := r.reconcileVariants(ctx, existing, current, in.Variants); err != nil {
		return err
	}
	r.merged[slot] = existing
	return nil
}

// Delete removes a color with its variants and image rows. The image files
// are queued for removal after commit.
func (r *reconciler) Delete(_ context.Context, existing *models.Color) error {
	for _, img := range existing.Images {
		r.orphan(img.URL)
	}
	if err := r.tx.Where("color_id = ?", existing.ID).Delete(&models.Image{}).Error; err != nil {
		return fmt.Errorf("failed to delete color images: %w", err)
	}
	if err := r.tx.Where("color_id = ?", existing.ID).Delete(&models.Variant{}).Error; err != nil {
		return fmt.Errorf("failed to delete color variants: %w", err)
	}
	if err := r.tx.Where("id = ?", existing.ID).Delete(&models.Color{}).Error; err != nil {
		return fmt.Errorf("failed to delete color: %w", err)
	}
	return nil
}

func (r *reconciler) orphan(url string) {
	if url == "" {
		return
	}
	if _, ok := r.seen[url]; ok {
		return
	}
	r.seen[url] = struct{}{}
	r.orphans = append(r.orphans, url)
}

func (r *reconciler) reconcileVariants(ctx context.Context, color *models.Color, current []*models.Variant, entries []VariantEntry) error {
	vm := &variantMutator{tx: r.tx, colorID: color.ID, merged: make([]models.Variant, len(entries))}
	plan := reconcile.Diff(current, variantKey, entries, VariantEntry.Identity)
	if _, err := reconcile.ApplyPlan(ctx, plan, vm); err != nil {
		return err
	}
	color.Variants = vm.merged
	r.variants.Creates += plan.Summary.Creates
	r.variants.Updates += plan.Summary.Updates
	r.variants.Deletes += plan.Summary.Deletes
	return nil
}

type variantMutator struct {
	tx      *gorm.DB
	colorID uuid.UUID
	merged  []models.Variant
}

func (m *variantMutator) Create(_ context.Context, slot int, desired VariantEntry) error {
	in := desired.Input()
	size, _ := ParseSize(in.Size)
	v := models.Variant{ID: uuid.New(), ColorID: m.colorID, Size: size, Stock: in.Stock, Price: in.Price}
	if err := m.tx.Create(&v).Error; err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}
	m.merged[slot] = v
	return nil
}

func (m *variantMutator) Update(_ context.Context, slot int, existing *models.Variant, desired VariantEntry) error {
	in := desired.Input()
	size, _ := ParseSize(in.Size)
	err := m.tx.Model(&models.Variant{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{"size": size, "stock": in.Stock, "price": in.Price}).Error
	if err != nil {
		return fmt.Errorf("failed to update variant: %w", err)
	}
	existing.Size, existing.Stock, existing.Price = size, in.Stock, in.Price
	m.merged[slot] = *existing
	return nil
}

func (m *variantMutator) Delete(_ context.Context, existing *models.Variant) error {
	if err := m.tx.Where("id = ?", existing.ID).Delete(&models.Variant{}).Error; err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	return nil
}

// minPrice is the cheapest variant price across colors, or zero when there
// are no variants.
func minPrice(colors []*models.Color) decimal.Decimal {
	var (
		lowest decimal.Decimal
		found  bool
	)
	for _, c := range colors {
		if c == nil {
			continue
		}
		for _, v := range c.Variants {
			if !found || v.Price.LessThan(lowest) {
				lowest, found = v.Price, true
			}
		}
	}
	if !found {
		return decimal.Zero
	}
	return lowest
}
