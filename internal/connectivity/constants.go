package connectivity

// Log messages
const (
	LogMsgConnectivityChanged = "Connectivity state changed"
	LogMsgPublishFailed       = "Failed to publish connectivity event"
)
