package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	auditRepo   repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		auditRepo:   auditRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Category string
	Search   string
}

type ProductListOutput struct {
	Items      []model.Product `json:"items"`
	Categories []string        `json:"categories"`
}

// 商品詳細＋同カテゴリの関連商品
type ProductDetailOutput struct {
	Product model.Product   `json:"product"`
	Related []model.Product `json:"related"`
}

// 作成・更新の入力DTO
type SaveProductInput struct {
	Name        string
	Description string
	Price       int64
	Category    string
	Image       string
}

// 公開商品一覧（カテゴリ・検索ワード絞り込み付き）
func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	items, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Category: in.Category,
		Search:   in.Search,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//絞り込みUI用のカテゴリ一覧も一緒に返す
	categories, err := u.productRepo.Categories(ctx)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Items: items, Categories: categories}, nil
}

// 商品詳細
func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (ProductDetailOutput, error) {
	if productID <= 0 {
		return ProductDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	related, err := u.productRepo.ListRelated(ctx, p.ID, p.Category, 4)
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductDetailOutput{Product: p, Related: related}, nil
}

// 商品作成（管理者のみ。ガードはmiddleware側）
func (u *ProductUsecase) CreateProduct(ctx context.Context, actorAdminUserID int64, in SaveProductInput) (model.Product, error) {
	if actorAdminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validator.ValidateProductInput(in.Name, in.Description, in.Price, in.Category); err != nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorAdminUserID, model.AuditActionCreateProduct, created.ID, nil, &created)

	return created, nil
}

// 商品更新
func (u *ProductUsecase) UpdateProduct(ctx context.Context, actorAdminUserID int64, productID int64, in SaveProductInput) (model.Product, error) {
	if actorAdminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validator.ValidateProductInput(in.Name, in.Description, in.Price, in.Category); err != nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	before, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	after := before
	after.Name = in.Name
	after.Description = in.Description
	after.Price = in.Price
	after.Category = in.Category
	after.Image = in.Image

	if err := u.productRepo.Update(ctx, after); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorAdminUserID, model.AuditActionUpdateProduct, productID, &before, &after)

	return after, nil
}

// 商品削除。
// カート行は巻き添えで消えるが、注文明細のスナップショットは残る。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, actorAdminUserID int64, productID int64) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	before, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.productRepo.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorAdminUserID, model.AuditActionDeleteProduct, productID, &before, nil)

	return nil
}

// 監査ログは本処理を失敗させない（書けなければ諦める）
func (u *ProductUsecase) writeAudit(ctx context.Context, actorUserID int64, action model.AuditAction, productID int64, before, after *model.Product) {
	toJSON := func(p *model.Product) string {
		if p == nil {
			return ""
		}
		b, err := json.Marshal(p)
		if err != nil {
			return ""
		}
		return string(b)
	}

	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   toJSON(before),
		AfterJSON:    toJSON(after),
		CreatedAt:    time.Now(),
	})
}
