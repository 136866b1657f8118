package tabular

// Row is a single table row. Rows are plain field maps so one table engine
// can serve every entity; identity and hierarchy markers are carried as
// regular fields (see Flatten and Classify).
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

type ColumnType string

const (
	ColumnText    ColumnType = "text"
	ColumnNumber  ColumnType = "number"
	ColumnEnum    ColumnType = "enum"
	ColumnDate    ColumnType = "date"
	ColumnBoolean ColumnType = "boolean"
	ColumnImage   ColumnType = "image"
	ColumnActions ColumnType = "actions"
)

// Option is one selectable value of an enum column.
type Option struct {
	Label string `json:"label"`
	Value any    `json:"value"`
	Color string `json:"color,omitempty"`
}

type ValidationRule struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Column describes one table column: how it is rendered, filtered, sorted
// and edited. Field must exist on every row the column is bound to; the
// renderer substitutes "-" when it does not.
type Column struct {
	Field         string           `json:"field"`
	Header        string           `json:"header"`
	Type          ColumnType       `json:"type"`
	Sortable      bool             `json:"sortable,omitempty"`
	Filterable    bool             `json:"filterable,omitempty"`
	FilterType    string           `json:"filterType,omitempty"`
	Editable      bool             `json:"editable,omitempty"`
	Required      bool             `json:"required,omitempty"`
	Validations   []ValidationRule `json:"validations,omitempty"`
	Options       []Option         `json:"options,omitempty"`
	DisplayFormat string           `json:"displayFormat,omitempty"`
	EditComponent string           `json:"editComponent,omitempty"`
}

// CustomAction is a per-row action beyond the standard CRUD set. Condition
// hides the action for rows it returns false for; Disabled greys it out.
type CustomAction struct {
	Label     string         `json:"label"`
	Icon      string         `json:"icon,omitempty"`
	Action    string         `json:"action"`
	Severity  string         `json:"severity,omitempty"`
	Condition func(Row) bool `json:"-"`
	Disabled  func(Row) bool `json:"-"`
}

type Actions struct {
	Add           bool           `json:"add"`
	Edit          bool           `json:"edit"`
	Delete        bool           `json:"delete"`
	BulkDelete    bool           `json:"bulkDelete"`
	Export        bool           `json:"export"`
	ConfirmDelete bool           `json:"confirmDelete"`
	Custom        []CustomAction `json:"custom,omitempty"`
}

type LoadStrategy string

const (
	// LoadEager derives child rows synchronously from the parent's nested
	// array. It is the only implemented strategy.
	LoadEager  LoadStrategy = "eager"
	LoadLazy   LoadStrategy = "lazy"
	LoadHybrid LoadStrategy = "hybrid"
)

// LevelConfig overrides columns and actions for one hierarchy level.
type LevelConfig struct {
	Level          int      `json:"level"`
	Columns        []Column `json:"columns,omitempty"`
	Actions        *Actions `json:"actions,omitempty"`
	AllowExpansion bool     `json:"allowExpansion"`
}

// Hierarchy describes the two-level parent/child expansion model.
// ParentKeyField names the identity field on the parent record;
// ParentIDField names the back-reference written on flattened child rows.
type Hierarchy struct {
	Enabled             bool          `json:"enabled"`
	ParentKeyField      string        `json:"parentKeyField"`
	ParentIDField       string        `json:"parentIdField"`
	ChildAttributeField string        `json:"childAttributeField"`
	LoadStrategy        LoadStrategy  `json:"loadStrategy"`
	MaxDepth            int           `json:"maxDepth"`
	Levels              []LevelConfig `json:"levels,omitempty"`
}
