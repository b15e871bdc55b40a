package paymentprovider

// CheckoutSessionRequest — запрос на создание платёжной сессии у провайдера.
type CheckoutSessionRequest struct {
	PriceID           string
	Quantity          int
	Mode              string
	SuccessURL        string
	CancelURL         string
	ClientReferenceID string
	CustomerEmail     string
}

// CheckoutSession — созданная платёжная сессия провайдера.
type CheckoutSession struct {
	ID                string `json:"id"`
	URL               string `json:"url"`
	Status            string `json:"status"`
	PaymentStatus     string `json:"payment_status"`
	ClientReferenceID string `json:"client_reference_id"`
	CustomerEmail     string `json:"customer_email"`
}

// WebhookEvent — событие провайдера, доставленное на вебхук.
type WebhookEvent struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object WebhookObject `json:"object"`
	} `json:"data"`
}

// WebhookObject — полезная нагрузка события: сессия либо подписка.
type WebhookObject struct {
	ID                string `json:"id"`
	ClientReferenceID string `json:"client_reference_id"`
	CustomerEmail     string `json:"customer_email"`
	Status            string `json:"status"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
}

// Типы событий провайдера, которые обрабатывает приложение.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventSubscriptionUpdated = "customer.subscription.updated"
)
