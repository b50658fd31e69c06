package models

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
// Details заполняется только для внутренних ошибок (5xx).
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SubscribeResponse - ответ на регистрацию подписки.
type SubscribeResponse struct {
	Message            string `json:"message"`
	SubscriptionsCount int    `json:"subscriptionsCount"`
}

// NotifyResponse - ответ на успешную рассылку уведомления.
type NotifyResponse struct {
	Message            string `json:"message"`
	Type               string `json:"type"`
	Sent               int    `json:"sent"`
	Failed             int    `json:"failed"`
	TotalSubscriptions int    `json:"totalSubscriptions"`
}

// StatusResponse - ответ на запрос состояния сервиса.
type StatusResponse struct {
	Subscriptions   int  `json:"subscriptions"`
	VapidConfigured bool `json:"vapidConfigured"`
}
