package domain

// SyntheticRootID - зарезервированный идентификатор корня-компании,
// который подставляется, когда в выборке нет естественного корня
const SyntheticRootID int64 = 999999

// DepartmentRecord представляет подразделение в плоском списке источника
type DepartmentRecord struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Code              string     `json:"sort_name"`
	PrimaryDepartment bool       `json:"primary_department"`
	HeadDepartment    bool       `json:"head_department"`
	ApproveManagers   ManagerIDs `json:"approve_manager"`
	Parent            Ref        `json:"parent_id"`
	Company           Ref        `json:"company_id"`
	Synthetic         bool       `json:"isFirstNode,omitempty"`
}

// Employee представляет сотрудника; используется только для имён руководителей
type Employee struct {
	ID   int64 `json:"id"`
	Name Ref   `json:"name"`
}

// DisplayName возвращает отображаемое имя сотрудника
func (e Employee) DisplayName() string {
	return e.Name.Label
}

// Snapshot - данные одной выборки из источника
type Snapshot struct {
	Departments []DepartmentRecord `json:"data"`
	Employees   []Employee         `json:"listOfHrEmployeeMultiCompany"`
}

// TreeNode - узел построенного дерева. После построения не изменяется.
type TreeNode struct {
	ID                int64
	Name              string
	Code              string
	PrimaryDepartment bool
	HeadDepartment    bool
	ApproveManagers   []int64
	Synthetic         bool
	// Level - глубина узла, корень = 1
	Level    int
	Children []*TreeNode
}

// Directory - справочник имён сотрудников по идентификатору
type Directory struct {
	names map[int64]string
}

// NewDirectory строит справочник из списка сотрудников
func NewDirectory(employees []Employee) *Directory {
	names := make(map[int64]string, len(employees))
	for _, emp := range employees {
		if _, ok := names[emp.ID]; ok {
			continue
		}
		names[emp.ID] = emp.DisplayName()
	}
	return &Directory{names: names}
}

// Lookup возвращает имя сотрудника и признак его наличия в справочнике
func (d *Directory) Lookup(id int64) (string, bool) {
	if d == nil {
		return "", false
	}
	name, ok := d.names[id]
	return name, ok
}

// Len возвращает количество сотрудников в справочнике
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}
