package warehouse

// MessageResponse is the acknowledgement returned by create, update and delete calls.
type MessageResponse struct {
	Msg string `json:"msg"`
	ID  int    `json:"id,omitempty"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserRole     string `json:"user_role"`
}

// Dashboard carries the role dependent sections of GET /dashboard. Sections the
// server does not send for the caller's role stay nil.
type Dashboard struct {
	KPIData          *AdminKPI      `json:"kpi_data,omitempty"`
	SystemHealth     map[string]any `json:"system_health,omitempty"`
	RecentActivities []Activity     `json:"recent_activities,omitempty"`
	ManagerStats     map[string]any `json:"manager_stats,omitempty"`
	StaffStats       map[string]any `json:"petugas_stats,omitempty"`
}

type AdminKPI struct {
	ActiveUsers    int     `json:"active_users"`
	TotalSuppliers int     `json:"total_suppliers"`
	TotalCustomers int     `json:"total_customers"`
	TotalStock     float64 `json:"total_stock"`
}

type Activity struct {
	User   string `json:"user"`
	Type   string `json:"type"`
	Action string `json:"action"`
	Time   string `json:"time"`
}

// Fruit is a fruit master record. Prices are per unit (Satuan).
type Fruit struct {
	ID            int     `json:"buah_id,omitempty"`
	Name          string  `json:"nama_buah"`
	Unit          string  `json:"satuan"`
	ShelfLifeDays int     `json:"umur_simpan_hari"`
	TotalStock    float64 `json:"stok_total"`
	UnitPrice     float64 `json:"harga_satuan"`
}

type Supplier struct {
	ID      int    `json:"supplier_id,omitempty"`
	Name    string `json:"nama_supplier"`
	Address string `json:"alamat"`
	Contact string `json:"kontak"`
}

type Customer struct {
	ID      int    `json:"pelanggan_id,omitempty"`
	Name    string `json:"nama_pelanggan"`
	Address string `json:"alamat"`
	Phone   string `json:"telepon"`
}

// User is an account as listed by the admin endpoints.
type User struct {
	ID       int    `json:"user_id,omitempty"`
	Username string `json:"username"`
	FullName string `json:"nama_lengkap"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// UserInput creates or updates an account. An empty Password keeps the current one on update.
type UserInput struct {
	Username string `json:"username"`
	FullName string `json:"nama_lengkap"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
	Password string `json:"password,omitempty"`
}

// Inbound is a goods-received transaction.
type Inbound struct {
	ID        int     `json:"masuk_id"`
	Date      string  `json:"tanggal"`
	Supplier  string  `json:"supplier"`
	TotalCost float64 `json:"total_biaya"`
}

type InboundInput struct {
	SupplierID int           `json:"supplier_id"`
	Items      []InboundItem `json:"items"`
	TotalCost  float64       `json:"total_biaya"`
}

type InboundItem struct {
	FruitID       int     `json:"buah_id"`
	InitialStock  float64 `json:"stok_awal"`
	PurchasePrice float64 `json:"harga_beli"`
	Quality       string  `json:"kualitas"`
}

// Outbound is a sale to a customer.
type Outbound struct {
	ID         int            `json:"keluar_id"`
	Date       string         `json:"tanggal"`
	Customer   string         `json:"pelanggan"`
	TotalSales float64        `json:"total_penjualan"`
	Status     string         `json:"status"`
	Items      []OutboundItem `json:"items"`
}

type OutboundInput struct {
	CustomerID int            `json:"pelanggan_id"`
	TotalSales float64        `json:"total_penjualan"`
	Items      []OutboundItem `json:"items"`
}

type OutboundItem struct {
	BatchID   int     `json:"batch_id"`
	Quantity  float64 `json:"jumlah"`
	UnitPrice float64 `json:"harga_satuan"`
}

// Batch is the stock remaining from one inbound item.
type Batch struct {
	ID           int     `json:"batch_id"`
	InboundID    int     `json:"masuk_id"`
	FruitName    string  `json:"nama_buah"`
	ReceivedAt   string  `json:"tanggal_masuk_batch"`
	InitialStock float64 `json:"stok_awal"`
	CurrentStock float64 `json:"stok_saat_ini"`
	Quality      string  `json:"kualitas"`
}

// FIFOBatch is a batch as reported by the FIFO monitor.
type FIFOBatch struct {
	ID            int     `json:"batch_id"`
	Fruit         string  `json:"buah"`
	ReceivedAt    string  `json:"tanggal_masuk"`
	CurrentStock  float64 `json:"stok_saat_ini"`
	ShelfLifeDays int     `json:"umur_simpan_hari"`
	DaysLeft      int     `json:"days_left"`
	Status        string  `json:"status_fifo"`
}

// SalesReportRow is one day of the sales report.
type SalesReportRow struct {
	Date             string  `json:"tanggal"`
	TransactionCount int     `json:"jumlah_transaksi"`
	TotalSales       float64 `json:"total_penjualan"`
}

// TransactionReportRow is one transaction of the transaction report. Type tells
// inbound from outbound; Party is the supplier or customer.
type TransactionReportRow struct {
	ID     int     `json:"id"`
	Date   string  `json:"tanggal"`
	Type   string  `json:"tipe"`
	Party  string  `json:"pihak"`
	Total  float64 `json:"total"`
	Status string  `json:"status"`
}
