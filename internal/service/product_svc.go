package service

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 商品服务 ====================

type ProductService struct {
	products repository.ProductRepository
	types    repository.ProductTypeRepository
}

// NewProductService 工厂方法
func NewProductService(products repository.ProductRepository, types repository.ProductTypeRepository) *ProductService {
	return &ProductService{products: products, types: types}
}

func toAttributes(reqs []dto.ProductAttributeReq) []model.ProductAttribute {
	attrs := make([]model.ProductAttribute, 0, len(reqs))
	for _, a := range reqs {
		valueType := a.ValueType
		if valueType == "" {
			valueType = "string"
		}
		attrs = append(attrs, model.ProductAttribute{
			Key:       a.Key,
			Value:     a.Value,
			ValueType: valueType,
		})
	}
	return attrs
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, tenantID int64, req dto.ProductCreateReq) (*model.Product, error) {
	if !slugPattern.MatchString(req.Slug) {
		return nil, errs.Validation("slug 只能包含小写字母、数字和连字符")
	}
	// 1. 商品类型必须属于同一租户，跨租户引用视为不存在
	if _, err := s.types.GetByID(ctx, tenantID, req.ProductTypeID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.ProductStatusDraft
	}
	switch status {
	case model.ProductStatusDraft, model.ProductStatusActive, model.ProductStatusArchived:
	default:
		return nil, errs.Validation("无效的商品状态")
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	images, err := marshalJSON(req.Images)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		TenantOwned:   model.TenantOwned{TenantID: tenantID},
		ProductTypeID: req.ProductTypeID,
		Title:         req.Title,
		Slug:          req.Slug,
		Description:   req.Description,
		PriceAmount:   req.PriceAmount,
		Currency:      currency,
		Status:        status,
		Metadata:      datatypes.JSONMap(req.Metadata),
		Images:        images,
		Attributes:    toAttributes(req.Attributes),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get 按 ID 获取商品（含属性）
func (s *ProductService) Get(ctx context.Context, tenantID, id int64) (*model.Product, error) {
	return s.products.GetByID(ctx, tenantID, id)
}

// List 分页查询商品
func (s *ProductService) List(ctx context.Context, tenantID int64, req dto.ProductListReq) (*repository.Page[model.Product], error) {
	return s.products.List(ctx, tenantID, repository.ProductFilter{
		Status:        req.Status,
		ProductTypeID: req.ProductTypeID,
		Keyword:       req.Keyword,
		Page:          req.Page,
		Limit:         req.Limit,
	})
}

// Update 部分更新商品；提供 attributes 时整体替换
func (s *ProductService) Update(ctx context.Context, tenantID, id int64, req dto.ProductUpdateReq) (*model.Product, error) {
	fields := map[string]interface{}{}
	if req.ProductTypeID != nil {
		if _, err := s.types.GetByID(ctx, tenantID, *req.ProductTypeID); err != nil {
			return nil, err
		}
		fields["product_type_id"] = *req.ProductTypeID
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Slug != nil {
		if !slugPattern.MatchString(*req.Slug) {
			return nil, errs.Validation("slug 只能包含小写字母、数字和连字符")
		}
		fields["slug"] = *req.Slug
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.PriceAmount != nil {
		if *req.PriceAmount < 0 {
			return nil, errs.Validation("价格不能为负数")
		}
		fields["price_amount"] = *req.PriceAmount
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.Status != nil {
		switch *req.Status {
		case model.ProductStatusDraft, model.ProductStatusActive, model.ProductStatusArchived:
			fields["status"] = *req.Status
		default:
			return nil, errs.Validation("无效的商品状态")
		}
	}
	if req.Metadata != nil {
		fields["metadata"] = datatypes.JSONMap(req.Metadata)
	}
	if req.Images != nil {
		images, err := marshalJSON(req.Images)
		if err != nil {
			return nil, err
		}
		fields["images"] = images
	}

	if len(fields) > 0 {
		if err := s.products.UpdateFields(ctx, tenantID, id, fields); err != nil {
			return nil, err
		}
	}

	if req.Attributes != nil {
		attrs := toAttributes(req.Attributes)
		if err := s.products.ReplaceAttributes(ctx, tenantID, id, attrs); err != nil {
			return nil, err
		}
	}

	return s.products.GetByID(ctx, tenantID, id)
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.products.Delete(ctx, tenantID, id)
}

// AppendImage 把上传后的图片 URL 追加到商品 images 列表
func (s *ProductService) AppendImage(ctx context.Context, tenantID, id int64, url string) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	var images []string
	if len(product.Images) > 0 {
		if err := json.Unmarshal(product.Images, &images); err != nil {
			images = nil
		}
	}
	images = append(images, url)

	raw, err := marshalJSON(images)
	if err != nil {
		return nil, err
	}
	if err := s.products.UpdateFields(ctx, tenantID, id, map[string]interface{}{"images": raw}); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, tenantID, id)
}

// ==================== 店面读路径 ====================

// ListPublished 店面商品列表，排除草稿
func (s *ProductService) ListPublished(ctx context.Context, tenantID int64, page, limit int) (*repository.Page[model.Product], error) {
	return s.products.ListPublished(ctx, tenantID, page, limit)
}

// GetPublished 店面商品详情，草稿视为不存在
func (s *ProductService) GetPublished(ctx context.Context, tenantID, id int64) (*model.Product, error) {
	return s.products.GetPublished(ctx, tenantID, id)
}
