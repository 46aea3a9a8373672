package tree

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/org-chart-api/internal/domain"
)

const (
	connectorMid  = "├── "
	connectorLast = "└── "
	indentMid     = "│   "
	indentLast    = "    "
)

// UnknownManagerName подставляется, если у сотрудника нет имени
const UnknownManagerName = "Không xác định"


type outlineItem struct {
	node   *domain.TreeNode
	prefix string
	last   bool
	top    bool
}

// WriteOutline печатает дерево текстом с отступами; имена руководителей берутся из dir
func WriteOutline(w io.Writer, root *domain.TreeNode, dir *domain.Directory) error {
	if root == nil {
		return nil
	}

	bw := bufio.NewWriter(w)
	stack := []outlineItem{{node: root, top: true}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		line := item.prefix
		childPrefix := item.prefix
		if !item.top {
			if item.last {
				line += connectorLast
				childPrefix += indentLast
			} else {
				line += connectorMid
				childPrefix += indentMid
			}
		}
		line += describe(item.node, dir)

		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}

		children := item.node.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, outlineItem{
				node:   children[i],
				prefix: childPrefix,
				last:   i == len(children)-1,
			})
		}
	}

	return bw.Flush()
}

func describe(node *domain.TreeNode, dir *domain.Directory) string {
	var b strings.Builder
	b.WriteString(node.Name)
	if node.Code != "" {
		fmt.Fprintf(&b, " [%s]", node.Code)
	}

	var flags []string
	if node.PrimaryDepartment {
		flags = append(flags, "primary")
	}
	if node.HeadDepartment {
		flags = append(flags, "head")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(flags, ", "))
	}

	if managers := ManagerNames(node, dir); len(managers) > 0 {
		fmt.Fprintf(&b, " managers: %s", strings.Join(managers, ", "))
	}

	return b.String()
}

// ManagerNames возвращает имена руководителей узла; неизвестные id пропускаются
func ManagerNames(node *domain.TreeNode, dir *domain.Directory) []string {
	var names []string
	for _, id := range node.ApproveManagers {
		name, ok := dir.Lookup(id)
		if !ok {
			continue
		}
		if name == "" {
			name = UnknownManagerName
		}
		names = append(names, name)
	}
	return names
}
