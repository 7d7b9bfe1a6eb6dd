package dto

// ==================== 插件 DTO ====================

// PluginInstallReq 安装插件请求
type PluginInstallReq struct {
	Slug   string                 `json:"slug" binding:"required"`
	Config map[string]interface{} `json:"config"`
}

// PluginUpdateReq 更新插件安装请求
type PluginUpdateReq struct {
	Enabled  *bool                  `json:"enabled"`
	Position *int                   `json:"position"`
	Config   map[string]interface{} `json:"config"`
}
