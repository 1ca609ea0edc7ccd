package models

// NoticeLevel classifies a user-facing notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a message the dashboard shows after an operation. Operations
// return notices explicitly; presentation is up to the caller.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

func SuccessNotice(message string) Notice {
	return Notice{Level: NoticeSuccess, Message: message}
}

func WarningNotice(message string) Notice {
	return Notice{Level: NoticeWarning, Message: message}
}

func ErrorNotice(message string) Notice {
	return Notice{Level: NoticeError, Message: message}
}

// Response is the envelope for every JSON response
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Notices []Notice    `json:"notices,omitempty"`
}
