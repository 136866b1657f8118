package tabular

import "context"

// ChildAction is the generic "add nested item to a parent" protocol: a blank
// template for the new child plus a save handler bound to the owning entity.
type ChildAction struct {
	ParentIDField      string
	ChildTemplate      Row
	Save               func(ctx context.Context, parentID string, child Row) error
	KeepExpandedOnSave bool
	CollapseOnCancel   func(parent Row) bool
}

type SearchConfig struct {
	Enabled      bool     `json:"enabled"`
	Placeholder  string   `json:"placeholder,omitempty"`
	GlobalFields []string `json:"globalFields,omitempty"`
}

type ExportConfig struct {
	Enabled  bool   `json:"enabled"`
	Filename string `json:"filename,omitempty"`
}

type PaginationConfig struct {
	Lazy        bool  `json:"lazy"`
	RowsPerPage int   `json:"rowsPerPage"`
	PageSizes   []int `json:"pageSizes,omitempty"`
}

// BulkResult reports the outcome of a bulk delete, including the ids that
// could not be removed.
type BulkResult struct {
	Deleted int      `json:"deleted"`
	Failed  []string `json:"failed,omitempty"`
}

// Handlers are the late-bound CRUD hooks supplied per entity. The engine
// never implements these itself; config factories bind them to entity
// service methods.
type Handlers struct {
	LoadData            func(ctx context.Context, q Query) (Page, error)
	CreateItem          func(ctx context.Context, item Row) (Row, error)
	UpdateItem          func(ctx context.Context, ref RowRef, item Row) (Row, error)
	DeleteItem          func(ctx context.Context, ref RowRef) error
	BulkDelete          func(ctx context.Context, ids []string) (BulkResult, error)
	ExportData          func(ctx context.Context, q Query) ([]Row, error)
	ExecuteCustomAction func(ctx context.Context, action string, row Row) error
}

// Config is the full declarative schema of one managed table.
type Config struct {
	Entity      string           `json:"entity"`
	Title       string           `json:"title"`
	DataKey     string           `json:"dataKey"`
	Columns     []Column         `json:"columns"`
	Actions     Actions          `json:"actions"`
	Hierarchy   *Hierarchy       `json:"hierarchy,omitempty"`
	ChildAction *ChildAction     `json:"-"`
	Search      SearchConfig     `json:"search"`
	Export      ExportConfig     `json:"export"`
	Pagination  PaginationConfig `json:"pagination"`
	Handlers    Handlers         `json:"-"`
}

// Column returns the column bound to field, or false when the config has no
// such column.
func (c *Config) Column(field string) (Column, bool) {
	for _, col := range c.Columns {
		if col.Field == field {
			return col, true
		}
	}
	return Column{}, false
}

// EditableColumns returns the columns a row editor must validate on save.
func (c *Config) EditableColumns() []Column {
	out := make([]Column, 0, len(c.Columns))
	for _, col := range c.Columns {
		if col.Editable {
			out = append(out, col)
		}
	}
	return out
}
