package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldSessionID  = "session_id"
	FieldAuthState  = "auth_state"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldTxID       = "transaction_id"
	FieldCategoryID = "category_id"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentGuard     = "guard"
	ComponentDashboard = "dashboard"
	ComponentTx        = "transactions"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpResolve  = "resolve"
	OpLogin    = "login"
	OpRegister = "register"
	OpLogout   = "logout"
	OpRender   = "render"
)
