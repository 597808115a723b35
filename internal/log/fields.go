package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldUserID    = "user_id"
	FieldMessageID = "message_id"
	FieldWorkDate  = "work_date"
	FieldCategory  = "category"
	FieldHours     = "hours"
	FieldMonth     = "month"
	FieldKind      = "kind"
	FieldCount     = "count"
	FieldQueue     = "queue"
	FieldChart     = "chart"
	FieldWord      = "word"
	FieldCity      = "city"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentBot       = "bot"
	ComponentLedger    = "ledger"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentRenderer  = "renderer"
	ComponentTranslate = "translate"
)
