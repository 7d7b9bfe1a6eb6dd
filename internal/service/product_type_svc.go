package service

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 商品类型服务 ====================

type ProductTypeService struct {
	types repository.ProductTypeRepository
}

// NewProductTypeService 工厂方法
func NewProductTypeService(types repository.ProductTypeRepository) *ProductTypeService {
	return &ProductTypeService{types: types}
}

// Create 创建商品类型，schema 保存为开放 JSON，由前端表单渲染使用
func (s *ProductTypeService) Create(ctx context.Context, tenantID int64, req dto.ProductTypeCreateReq) (*model.ProductType, error) {
	if !slugPattern.MatchString(req.Slug) {
		return nil, errs.Validation("slug 只能包含小写字母、数字和连字符")
	}

	schema, err := marshalJSON(req.Schema)
	if err != nil {
		return nil, err
	}

	pt := &model.ProductType{
		TenantID:   tenantID,
		Name:       req.Name,
		Slug:       req.Slug,
		Schema:     schema,
		UIConfig:   datatypes.JSONMap(req.UIConfig),
		Validation: datatypes.JSONMap(req.Validation),
	}
	if err := s.types.Create(ctx, pt); err != nil {
		return nil, err
	}
	return pt, nil
}

// Get 按 ID 获取商品类型
func (s *ProductTypeService) Get(ctx context.Context, tenantID, id int64) (*model.ProductType, error) {
	return s.types.GetByID(ctx, tenantID, id)
}

// List 分页查询商品类型
func (s *ProductTypeService) List(ctx context.Context, tenantID int64, page, limit int) (*repository.Page[model.ProductType], error) {
	return s.types.List(ctx, tenantID, page, limit)
}

// Update 部分更新商品类型，slug 不可变更
func (s *ProductTypeService) Update(ctx context.Context, tenantID, id int64, req dto.ProductTypeUpdateReq) (*model.ProductType, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Schema != nil {
		schema, err := marshalJSON(req.Schema)
		if err != nil {
			return nil, err
		}
		fields["schema"] = schema
	}
	if req.UIConfig != nil {
		fields["ui_config"] = datatypes.JSONMap(req.UIConfig)
	}
	if req.Validation != nil {
		fields["validation"] = datatypes.JSONMap(req.Validation)
	}
	if len(fields) == 0 {
		return s.types.GetByID(ctx, tenantID, id)
	}

	if err := s.types.UpdateFields(ctx, tenantID, id, fields); err != nil {
		return nil, err
	}
	return s.types.GetByID(ctx, tenantID, id)
}

// Delete 删除商品类型
func (s *ProductTypeService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.types.Delete(ctx, tenantID, id)
}

// marshalJSON 把开放结构序列化成 datatypes.JSON 列值
func marshalJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("JSON 序列化失败: %w", err))
	}
	return datatypes.JSON(raw), nil
}
