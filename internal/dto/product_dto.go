package dto

// ==================== 商品类型 DTO ====================

// ProductTypeCreateReq 创建商品类型请求
type ProductTypeCreateReq struct {
	Name       string                 `json:"name" binding:"required"`
	Slug       string                 `json:"slug" binding:"required"`
	Schema     map[string]interface{} `json:"schema"`
	UIConfig   map[string]interface{} `json:"ui_config"`
	Validation map[string]interface{} `json:"validation"`
}

// ProductTypeUpdateReq 更新商品类型请求
type ProductTypeUpdateReq struct {
	Name       *string                `json:"name"`
	Schema     map[string]interface{} `json:"schema"`
	UIConfig   map[string]interface{} `json:"ui_config"`
	Validation map[string]interface{} `json:"validation"`
}

// ==================== 商品 DTO ====================

// ProductAttributeReq 商品属性键值对
type ProductAttributeReq struct {
	Key       string `json:"key" binding:"required"`
	Value     string `json:"value"`
	ValueType string `json:"value_type"`
}

// ProductCreateReq 创建商品请求
type ProductCreateReq struct {
	ProductTypeID int64                  `json:"product_type_id" binding:"required"`
	Title         string                 `json:"title" binding:"required"`
	Slug          string                 `json:"slug" binding:"required"`
	Description   string                 `json:"description"`
	PriceAmount   int64                  `json:"price_amount" binding:"min=0"`
	Currency      string                 `json:"currency"`
	Status        string                 `json:"status"`
	Metadata      map[string]interface{} `json:"metadata"`
	Images        []string               `json:"images"`
	Attributes    []ProductAttributeReq  `json:"attributes"`
}

// ProductUpdateReq 更新商品请求
type ProductUpdateReq struct {
	ProductTypeID *int64                 `json:"product_type_id"`
	Title         *string                `json:"title"`
	Slug          *string                `json:"slug"`
	Description   *string                `json:"description"`
	PriceAmount   *int64                 `json:"price_amount"`
	Currency      *string                `json:"currency"`
	Status        *string                `json:"status"`
	Metadata      map[string]interface{} `json:"metadata"`
	Images        []string               `json:"images"`
	Attributes    []ProductAttributeReq  `json:"attributes"`
}

// ProductListReq 商品列表查询参数
type ProductListReq struct {
	Status        string `form:"status"`
	ProductTypeID int64  `form:"product_type_id"`
	Keyword       string `form:"keyword"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}
