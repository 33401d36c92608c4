package dto

// ── 部门模块 DTO ──

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=50"`
	Color     string `json:"color"      binding:"omitempty,hexcolor"`
	SortOrder int    `json:"sort_order" binding:"omitempty,min=0"`
}

// UpdateDepartmentRequest 更新部门请求
type UpdateDepartmentRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=50"`
	Color     *string `json:"color"      binding:"omitempty,hexcolor"`
	IsActive  *bool   `json:"is_active"`
	SortOrder *int    `json:"sort_order" binding:"omitempty,min=0"`
}

// DepartmentListRequest 部门列表查询参数
type DepartmentListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// DepartmentResponse 部门信息响应
type DepartmentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
