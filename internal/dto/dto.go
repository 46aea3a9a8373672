package dto

import (
	"strconv"

	"github.com/org-chart-api/internal/domain"
	"github.com/org-chart-api/internal/tree"
)

// Форматы ответа
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ChartQuery - параметры запроса оргструктуры
type ChartQuery struct {
	Token  string `validate:"required"`
	Format string `validate:"oneof=json text"`
}

// ChartResponse - ответ с оргструктурой; root равен null, если отображать нечего
type ChartResponse struct {
	Company string            `json:"company"`
	Root    *TreeNodeResponse `json:"root"`
	Stats   ChartStats        `json:"stats"`
}

// ChartStats - сколько записей пришло и сколько попало в дерево
type ChartStats struct {
	Records  int `json:"records"`
	Rendered int `json:"rendered"`
	Dropped  int `json:"dropped"`
}

// TreeNodeResponse - узел дерева для отрисовки
type TreeNodeResponse struct {
	ID                int64              `json:"id"`
	Name              string             `json:"name"`
	Code              string             `json:"code"`
	PrimaryDepartment bool               `json:"primary_department"`
	HeadDepartment    bool               `json:"head_department"`
	ApproveManagers   []ManagerResponse  `json:"approve_managers"`
	Level             int                `json:"level"`
	Tier              string             `json:"tier"`
	Synthetic         bool               `json:"synthetic,omitempty"`
	Children          []TreeNodeResponse `json:"children"`
}

// ManagerResponse - руководитель с именем из справочника сотрудников
type ManagerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewChartResponse переводит построенное дерево в ответ API.
// unknownManager подставляется вместо пустого имени руководителя.
func NewChartResponse(company string, root *domain.TreeNode, dir *domain.Directory, report tree.Report, unknownManager string) ChartResponse {
	resp := ChartResponse{
		Company: company,
		Stats: ChartStats{
			Records:  report.Records,
			Rendered: report.Reachable,
			Dropped:  len(report.Unreachable) + len(report.Duplicates),
		},
	}

	if root != nil {
		node := NewTreeNodeResponse(root, dir, unknownManager)
		resp.Root = &node
	}

	return resp
}

// NewTreeNodeResponse переводит узел и его поддерево; руководители, которых нет в справочнике, не показываются
func NewTreeNodeResponse(node *domain.TreeNode, dir *domain.Directory, unknownManager string) TreeNodeResponse {
	resp := TreeNodeResponse{
		ID:                node.ID,
		Name:              node.Name,
		Code:              node.Code,
		PrimaryDepartment: node.PrimaryDepartment,
		HeadDepartment:    node.HeadDepartment,
		ApproveManagers:   []ManagerResponse{},
		Level:             node.Level,
		Tier:              "level" + strconv.Itoa(node.Level),
		Synthetic:         node.Synthetic,
		Children:          make([]TreeNodeResponse, 0, len(node.Children)),
	}

	for _, id := range node.ApproveManagers {
		name, ok := dir.Lookup(id)
		if !ok {
			continue
		}
		if name == "" {
			name = unknownManager
		}
		resp.ApproveManagers = append(resp.ApproveManagers, ManagerResponse{ID: id, Name: name})
	}

	for _, child := range node.Children {
		resp.Children = append(resp.Children, NewTreeNodeResponse(child, dir, unknownManager))
	}

	return resp
}
