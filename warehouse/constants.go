package warehouse

// Endpoint paths of the SIM-Buah API, relative to the client's BaseURL.
const (
	APIName               = "sim-buah"              // APIName: represents the name of the API.
	LoginEndpoint         = "/auth/login"           // LoginEndpoint: exchanges credentials for an access and refresh token.
	LogoutEndpoint        = "/auth/logout"          // LogoutEndpoint: revokes the current access token.
	DashboardEndpoint     = "/dashboard"            // DashboardEndpoint: role dependent KPI summary.
	FruitsEndpoint        = "/master/buah"          // FruitsEndpoint: fruit master data.
	SuppliersEndpoint     = "/master/supplier"      // SuppliersEndpoint: supplier master data.
	CustomersEndpoint     = "/master/pelanggan"     // CustomersEndpoint: customer master data.
	UsersEndpoint         = "/admin/users"          // UsersEndpoint: user accounts, Admin only.
	InboundEndpoint       = "/inventory/masuk"      // InboundEndpoint: goods received from suppliers.
	OutboundEndpoint      = "/transaksi/keluar"     // OutboundEndpoint: sales to customers.
	BatchStockEndpoint    = "/batch-stock/"         // BatchStockEndpoint: stock per inbound batch.
	FIFOMonitorEndpoint   = "/monitor/batch_stock"  // FIFOMonitorEndpoint: batches ordered for FIFO release.
	SalesReportEndpoint   = "/laporan/penjualan"    // SalesReportEndpoint: daily sales totals.
	TxReportEndpoint      = "/laporan/transaksi"    // TxReportEndpoint: inbound and outbound transactions.
	ExportReportEndpoint  = "/laporan/export/"      // ExportReportEndpoint: report downloads, suffixed with the report type.
	ReportDateLayout      = "2006-01-02"            // ReportDateLayout: format of start_date and end_date.
	DefaultInboundQuality = "Grade A"               // DefaultInboundQuality: quality used when an inbound item has none.
)

// Export formats accepted by ExportReport.
const (
	FormatPDF   = "pdf"
	FormatExcel = "excel"
	FormatCSV   = "csv"
)

// Report types accepted by ExportReport.
const (
	ReportSales        = "penjualan"
	ReportTransactions = "transaksi"
)

// Outbound transaction statuses.
const (
	StatusProcessing = "Diproses"
	StatusShipped    = "Dikirim"
	StatusCancelled  = "Batal"
)

// User roles.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manajer"
	RoleStaff   = "Petugas Gudang"
)
