// Package tree строит дерево подразделений из плоского списка записей.
package tree

import (
	"slices"

	"github.com/org-chart-api/internal/domain"
)

// Report описывает, какие записи не попали в дерево и почему
type Report struct {
	Records        int
	Reachable      int
	RootCandidates int
	// Duplicates - повторные записи с уже встреченным id
	Duplicates []int64
	// UnresolvedParents - записи со ссылкой на отсутствующего родителя
	UnresolvedParents []int64
	// Unreachable - все записи, не вошедшие в дерево, в порядке входа
	Unreachable []int64
}

type shell struct {
	node    *domain.TreeNode
	pending []*shell
}

// Build строит дерево и возвращает корень или nil, если корень не найден
func Build(records []domain.DepartmentRecord) *domain.TreeNode {
	root, _ := BuildWithReport(records)
	return root
}

// BuildWithReport строит дерево и дополнительно возвращает отчёт о выброшенных записях.
// Никогда не возвращает ошибку: аномалии данных приводят только к исключению записей.
func BuildWithReport(records []domain.DepartmentRecord) (*domain.TreeNode, Report) {
	report := Report{Records: len(records)}

	index := make(map[int64]*shell, len(records))
	owned := make([]bool, len(records))
	for i, rec := range records {
		if _, ok := index[rec.ID]; ok {
			report.Duplicates = append(report.Duplicates, rec.ID)
			continue
		}
		owned[i] = true
		index[rec.ID] = &shell{node: &domain.TreeNode{
			ID:                rec.ID,
			Name:              rec.Name,
			Code:              rec.Code,
			PrimaryDepartment: rec.PrimaryDepartment,
			HeadDepartment:    rec.HeadDepartment,
			ApproveManagers:   slices.Clone([]int64(rec.ApproveManagers)),
			Synthetic:         rec.Synthetic,
		}}
	}

	var root *shell
	for i, rec := range records {
		if !owned[i] {
			continue
		}
		s := index[rec.ID]

		if rec.Parent.IsZero() {
			// при нескольких кандидатах побеждает последний
			report.RootCandidates++
			root = s
			continue
		}

		parent, ok := index[rec.Parent.ID]
		if !ok {
			report.UnresolvedParents = append(report.UnresolvedParents, rec.ID)
			continue
		}
		parent.pending = append(parent.pending, s)
	}

	visited := make(map[int64]struct{}, len(index))
	if root != nil {
		assignLevels(root, visited)
	}

	report.Reachable = len(visited)
	for i, rec := range records {
		if !owned[i] {
			continue
		}
		if _, ok := visited[rec.ID]; !ok {
			report.Unreachable = append(report.Unreachable, rec.ID)
		}
	}

	if root == nil {
		return nil, report
	}
	return root.node, report
}

// assignLevels обходит дерево в глубину на явном стеке. Узел, который уже
// был посещён, повторно не входит в дерево, поэтому цикл превращается в пропуск.
func assignLevels(root *shell, visited map[int64]struct{}) {
	root.node.Level = 1
	visited[root.node.ID] = struct{}{}

	stack := []*shell{root}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next := make([]*shell, 0, len(current.pending))
		for _, child := range current.pending {
			if _, seen := visited[child.node.ID]; seen {
				continue
			}
			visited[child.node.ID] = struct{}{}
			child.node.Level = current.node.Level + 1
			current.node.Children = append(current.node.Children, child.node)
			next = append(next, child)
		}

		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}
}

// Walk обходит дерево в прямом порядке; обход прекращается, если fn вернул false
func Walk(root *domain.TreeNode, fn func(node *domain.TreeNode) bool) {
	if root == nil {
		return
	}
	stack := []*domain.TreeNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(node) {
			return
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}
