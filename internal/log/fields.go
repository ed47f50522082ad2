package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldCategory      = "category"
	FieldReferenceDate = "reference_date"
	FieldSearchQuery   = "search_query"
	FieldRowCount      = "row_count"
	FieldReportPath    = "report_path"
	FieldCurrency      = "currency"
	FieldStock         = "stock"
	FieldCard          = "card"
	FieldBackend       = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentCore    = "core"
	ComponentReports = "reports"
	ComponentRates   = "rates"
	ComponentStocks  = "stocks"
	ComponentSource  = "source"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpFilter   = "filter"
	OpSearch   = "search"
	OpAssemble = "assemble"
	OpWrite    = "write"
	OpFetch    = "fetch"
	OpIngest   = "ingest"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
