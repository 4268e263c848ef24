package domain

// Table is a mongo collection name
type Table string

const (
	TableListings   Table = "listings"
	TableBids       Table = "bids"
	TableOrders     Table = "orders"
	TableCategories Table = "categories"
	TableAuditLogs  Table = "audit_logs"
	TableWatchlists Table = "watchlists"
)
