package dashboard

import (
	"go-shop-admin/internal/tabular"
)

// Operation configures how the dispatcher treats one CRUD verb on a tab:
// whether it is available at all, the toast shown on success, the prefix
// prepended to error toasts, and whether the tab's data is refreshed after.
type Operation struct {
	Enabled        bool   `json:"enabled"`
	SuccessMessage string `json:"successMessage,omitempty"`
	ErrorPrefix    string `json:"errorPrefix,omitempty"`
	RefreshAfter   bool   `json:"refreshAfter"`
}

type Operations struct {
	Create     Operation `json:"create"`
	Update     Operation `json:"update"`
	Delete     Operation `json:"delete"`
	BulkDelete Operation `json:"bulkDelete"`
	Export     Operation `json:"export"`
	Custom     Operation `json:"custom"`
}

// TabMeta is the presentation metadata of one dashboard tab.
type TabMeta struct {
	Icon  string `json:"icon,omitempty"`
	Order int    `json:"order"`
}

type NotificationConfig struct {
	Enabled bool `json:"enabled"`
}

// TabConfig is one managed dashboard tab: the table schema plus the
// dispatcher's per-operation policy.
type TabConfig struct {
	tabular.Config
	Meta          TabMeta            `json:"meta"`
	Operations    Operations         `json:"operations"`
	Notifications NotificationConfig `json:"notifications"`
}
