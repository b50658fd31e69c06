package models

// SubscriptionKeys содержит криптографический материал подписки,
// выданный браузером (Web Push / RFC 8291). Значения непрозрачны для сервера.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// PushSubscription - подписка Web Push, полученная от клиента целиком.
// Идентичность подписки определяется полем Endpoint.
type PushSubscription struct {
	Endpoint       string           `json:"endpoint"`
	ExpirationTime *float64         `json:"expirationTime,omitempty"`
	Keys           SubscriptionKeys `json:"keys"`
}

// Validate проверяет минимальную корректность подписки.
// Endpoint обязателен - без него подписку невозможно идентифицировать.
func (s *PushSubscription) Validate() error {
	if s == nil || s.Endpoint == "" {
		return ErrInvalidSubscription
	}
	return nil
}

// NotificationAction - одна именованная кнопка действия в уведомлении.
type NotificationAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Icon   string `json:"icon,omitempty"`
}

// NotificationPayload - содержимое push-уведомления, отправляемое подписчику.
// Записи каталога гарантируют непустые Title/Body, стабильный Tag и Data["url"].
type NotificationPayload struct {
	Title   string               `json:"title"`
	Body    string               `json:"body"`
	Icon    string               `json:"icon,omitempty"`
	Badge   string               `json:"badge,omitempty"`
	Tag     string               `json:"tag,omitempty"`
	Data    map[string]string    `json:"data,omitempty"`
	Actions []NotificationAction `json:"actions,omitempty"`
}

// Clone возвращает глубокую копию payload.
// Записи каталога неизменяемы, поэтому перед обогащением per-send
// данных всегда работаем с копией.
func (p NotificationPayload) Clone() NotificationPayload {
	cp := p
	if p.Data != nil {
		cp.Data = make(map[string]string, len(p.Data))
		for k, v := range p.Data {
			cp.Data[k] = v
		}
	}
	if p.Actions != nil {
		cp.Actions = make([]NotificationAction, len(p.Actions))
		copy(cp.Actions, p.Actions)
	}
	return cp
}

// DispatchReport - итог одной рассылки: сколько доставлено, сколько не доставлено
// (включая удаленные подписки) и сколько подписок осталось в хранилище после чистки.
type DispatchReport struct {
	Sent               int `json:"sent"`
	Failed             int `json:"failed"`
	TotalSubscriptions int `json:"totalSubscriptions"`
}
