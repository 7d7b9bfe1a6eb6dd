package service

import (
	"context"

	"gorm.io/datatypes"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
)

// ==================== 租户配置服务 ====================
// 工作流 / 配送方式 / 支付网关 / 外部集成的 CRUD，底层共用泛型仓储

func boolOr(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}

// ---------- Workflow ----------

type WorkflowService struct {
	repo repository.SettingRepository[model.Workflow]
}

// NewWorkflowService 工厂方法
func NewWorkflowService(repo repository.SettingRepository[model.Workflow]) *WorkflowService {
	return &WorkflowService{repo: repo}
}

func (s *WorkflowService) Create(ctx context.Context, tenantID int64, req dto.WorkflowCreateReq) (*model.Workflow, error) {
	steps, err := marshalJSON(req.Steps)
	if err != nil {
		return nil, err
	}
	wf := &model.Workflow{
		TenantOwned: model.TenantOwned{TenantID: tenantID},
		Name:        req.Name,
		Steps:       steps,
		Config:      datatypes.JSONMap(req.Config),
		IsActive:    boolOr(req.IsActive, true),
	}
	if err := s.repo.Create(ctx, wf); err != nil {
		return nil, err
	}
	return wf, nil
}

func (s *WorkflowService) Get(ctx context.Context, tenantID, id int64) (*model.Workflow, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *WorkflowService) List(ctx context.Context, tenantID int64, page, limit int) (*repository.Page[model.Workflow], error) {
	return s.repo.List(ctx, tenantID, page, limit)
}

func (s *WorkflowService) Update(ctx context.Context, tenantID, id int64, req dto.WorkflowUpdateReq) (*model.Workflow, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Steps != nil {
		steps, err := marshalJSON(req.Steps)
		if err != nil {
			return nil, err
		}
		fields["steps"] = steps
	}
	if req.Config != nil {
		fields["config"] = datatypes.JSONMap(req.Config)
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, tenantID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *WorkflowService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// ---------- DeliveryMethod ----------

type DeliveryMethodService struct {
	repo repository.SettingRepository[model.DeliveryMethod]
}

// NewDeliveryMethodService 工厂方法
func NewDeliveryMethodService(repo repository.SettingRepository[model.DeliveryMethod]) *DeliveryMethodService {
	return &DeliveryMethodService{repo: repo}
}

func (s *DeliveryMethodService) Create(ctx context.Context, tenantID int64, req dto.DeliveryMethodCreateReq) (*model.DeliveryMethod, error) {
	dm := &model.DeliveryMethod{
		TenantOwned: model.TenantOwned{TenantID: tenantID},
		Name:        req.Name,
		Config:      datatypes.JSONMap(req.Config),
		IsActive:    boolOr(req.IsActive, true),
	}
	if err := s.repo.Create(ctx, dm); err != nil {
		return nil, err
	}
	return dm, nil
}

func (s *DeliveryMethodService) Get(ctx context.Context, tenantID, id int64) (*model.DeliveryMethod, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *DeliveryMethodService) List(ctx context.Context, tenantID int64, page, limit int) (*repository.Page[model.DeliveryMethod], error) {
	return s.repo.List(ctx, tenantID, page, limit)
}

func (s *DeliveryMethodService) Update(ctx context.Context, tenantID, id int64, req dto.DeliveryMethodUpdateReq) (*model.DeliveryMethod, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Config != nil {
		fields["config"] = datatypes.JSONMap(req.Config)
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, tenantID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *DeliveryMethodService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// ---------- PaymentGateway ----------

type PaymentGatewayService struct {
	repo repository.SettingRepository[model.PaymentGateway]
}

// NewPaymentGatewayService 工厂方法
func NewPaymentGatewayService(repo repository.SettingRepository[model.PaymentGateway]) *PaymentGatewayService {
	return &PaymentGatewayService{repo: repo}
}

func (s *PaymentGatewayService) Create(ctx context.Context, tenantID int64, req dto.PaymentGatewayCreateReq) (*model.PaymentGateway, error) {
	gw := &model.PaymentGateway{
		TenantOwned: model.TenantOwned{TenantID: tenantID},
		Name:        req.Name,
		Provider:    req.Provider,
		Credentials: datatypes.JSONMap(req.Credentials),
		Config:      datatypes.JSONMap(req.Config),
		IsActive:    boolOr(req.IsActive, true),
	}
	if err := s.repo.Create(ctx, gw); err != nil {
		return nil, err
	}
	return gw, nil
}

func (s *PaymentGatewayService) Get(ctx context.Context, tenantID, id int64) (*model.PaymentGateway, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *PaymentGatewayService) List(ctx context.Context, tenantID int64, page, limit int) (*repository.Page[model.PaymentGateway], error) {
	return s.repo.List(ctx, tenantID, page, limit)
}

func (s *PaymentGatewayService) Update(ctx context.Context, tenantID, id int64, req dto.PaymentGatewayUpdateReq) (*model.PaymentGateway, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Provider != nil {
		fields["provider"] = *req.Provider
	}
	if req.Credentials != nil {
		fields["credentials"] = datatypes.JSONMap(req.Credentials)
	}
	if req.Config != nil {
		fields["config"] = datatypes.JSONMap(req.Config)
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, tenantID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *PaymentGatewayService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// ---------- Integration ----------

type IntegrationService struct {
	repo repository.SettingRepository[model.Integration]
}

// NewIntegrationService 工厂方法
func NewIntegrationService(repo repository.SettingRepository[model.Integration]) *IntegrationService {
	return &IntegrationService{repo: repo}
}

func (s *IntegrationService) Create(ctx context.Context, tenantID int64, req dto.IntegrationCreateReq) (*model.Integration, error) {
	it := &model.Integration{
		TenantOwned: model.TenantOwned{TenantID: tenantID},
		Name:        req.Name,
		Provider:    req.Provider,
		Credentials: datatypes.JSONMap(req.Credentials),
		Config:      datatypes.JSONMap(req.Config),
		IsActive:    boolOr(req.IsActive, true),
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *IntegrationService) Get(ctx context.Context, tenantID, id int64) (*model.Integration, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *IntegrationService) List(ctx context.Context, tenantID int64, page, limit int) (*repository.Page[model.Integration], error) {
	return s.repo.List(ctx, tenantID, page, limit)
}

func (s *IntegrationService) Update(ctx context.Context, tenantID, id int64, req dto.IntegrationUpdateReq) (*model.Integration, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Provider != nil {
		fields["provider"] = *req.Provider
	}
	if req.Credentials != nil {
		fields["credentials"] = datatypes.JSONMap(req.Credentials)
	}
	if req.Config != nil {
		fields["config"] = datatypes.JSONMap(req.Config)
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, tenantID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *IntegrationService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.repo.Delete(ctx, tenantID, id)
}
