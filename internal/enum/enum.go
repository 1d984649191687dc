package enum

// ── Group A: Wire values (seen by displays and browsers) ──

const (
	EventOrderSummary = "order_summary"
	EventResetOrder   = "reset_order"
)

const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
)

const (
	UserRoleOperator = "operator"
)

// ── Group B: Deployment selectors (STORE_DRIVER, ARCHIVE_DRIVER) ──

const (
	StoreDriverFile     = "file"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMySQL    = "mysql"
	StoreDriverPostgres = "postgres"
)

const (
	ArchiveDriverNone = "none"
	ArchiveDriverFS   = "fs"
	ArchiveDriverS3   = "s3"
)

// ── Group C: Metric labels ──

const (
	CatalogOpAdd    = "add"
	CatalogOpRemove = "remove"
)
