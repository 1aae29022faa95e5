package lavatop

import "encoding/json"

// Vocabularies used by the gate.lava.top API. Every enum is a closed
// set of wire literals; decoding anything outside the set fails with a
// ValidationError instead of silently keeping the string.

type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

var currencies = vocabulary[Currency]{CurrencyRUB, CurrencyUSD, CurrencyEUR}

func (c Currency) IsValid() bool { return currencies.contains(c) }

func (c *Currency) UnmarshalJSON(b []byte) error {
	return currencies.decode(b, "currency", c)
}

type ProductType string

const (
	ProductTypeCourse         ProductType = "COURSE"
	ProductTypeDigitalProduct ProductType = "DIGITAL_PRODUCT"
	ProductTypeBook           ProductType = "BOOK"
	ProductTypeGuide          ProductType = "GUIDE"
	ProductTypeSubscription   ProductType = "SUBSCRIPTION"
	ProductTypeAudio          ProductType = "AUDIO"
	ProductTypeMods           ProductType = "MODS"
	ProductTypeConsultation   ProductType = "CONSULTATION"
)

var productTypes = vocabulary[ProductType]{
	ProductTypeCourse, ProductTypeDigitalProduct, ProductTypeBook,
	ProductTypeGuide, ProductTypeSubscription, ProductTypeAudio,
	ProductTypeMods, ProductTypeConsultation,
}

func (t ProductType) IsValid() bool { return productTypes.contains(t) }

func (t *ProductType) UnmarshalJSON(b []byte) error {
	return productTypes.decode(b, "type", t)
}

type PostType string

const (
	PostTypeLesson PostType = "LESSON"
	PostTypePost   PostType = "POST"
)

var postTypes = vocabulary[PostType]{PostTypeLesson, PostTypePost}

func (t PostType) IsValid() bool { return postTypes.contains(t) }

func (t *PostType) UnmarshalJSON(b []byte) error {
	return postTypes.decode(b, "type", t)
}

// FeedVisibility filters the product/post feed listing.
type FeedVisibility string

const (
	FeedVisibilityAll         FeedVisibility = "ALL"
	FeedVisibilityOnlyVisible FeedVisibility = "ONLY_VISIBLE"
	FeedVisibilityOnlyHidden  FeedVisibility = "ONLY_HIDDEN"
)

var feedVisibilities = vocabulary[FeedVisibility]{
	FeedVisibilityAll, FeedVisibilityOnlyVisible, FeedVisibilityOnlyHidden,
}

func (v FeedVisibility) IsValid() bool { return feedVisibilities.contains(v) }

// ContractStatus is the lifecycle status of a purchase contract
// (invoices and individual sales share this vocabulary).
type ContractStatus string

const (
	ContractStatusNew                   ContractStatus = "new"
	ContractStatusInProgress            ContractStatus = "in-progress"
	ContractStatusCompleted             ContractStatus = "completed"
	ContractStatusFailed                ContractStatus = "failed"
	ContractStatusCancelled             ContractStatus = "cancelled"
	ContractStatusSubscriptionActive    ContractStatus = "subscription-active"
	ContractStatusSubscriptionExpired   ContractStatus = "subscription-expired"
	ContractStatusSubscriptionCancelled ContractStatus = "subscription-cancelled"
	ContractStatusSubscriptionFailed    ContractStatus = "subscription-failed"
)

var contractStatuses = vocabulary[ContractStatus]{
	ContractStatusNew, ContractStatusInProgress, ContractStatusCompleted,
	ContractStatusFailed, ContractStatusCancelled,
	ContractStatusSubscriptionActive, ContractStatusSubscriptionExpired,
	ContractStatusSubscriptionCancelled, ContractStatusSubscriptionFailed,
}

func (s ContractStatus) IsValid() bool { return contractStatuses.contains(s) }

func (s *ContractStatus) UnmarshalJSON(b []byte) error {
	return contractStatuses.decode(b, "status", s)
}

type Language string

const (
	LanguageEN Language = "EN"
	LanguageRU Language = "RU"
	LanguageES Language = "ES"
)

var languages = vocabulary[Language]{LanguageEN, LanguageRU, LanguageES}

func (l Language) IsValid() bool { return languages.contains(l) }

func (l *Language) UnmarshalJSON(b []byte) error {
	return languages.decode(b, "buyerLanguage", l)
}

// PaymentMethod is the payment provider. BANK131 serves RUB; UNLIMINT
// and PAYPAL serve USD/EUR. The server enforces the pairing.
type PaymentMethod string

const (
	PaymentMethodBank131  PaymentMethod = "BANK131"
	PaymentMethodUnlimint PaymentMethod = "UNLIMINT"
	PaymentMethodPayPal   PaymentMethod = "PAYPAL"
)

var paymentMethods = vocabulary[PaymentMethod]{
	PaymentMethodBank131, PaymentMethodUnlimint, PaymentMethodPayPal,
}

func (m PaymentMethod) IsValid() bool { return paymentMethods.contains(m) }

func (m *PaymentMethod) UnmarshalJSON(b []byte) error {
	return paymentMethods.decode(b, "paymentMethod", m)
}

type WebhookEventType string

const (
	WebhookEventPaymentResult    WebhookEventType = "payment_result"
	WebhookEventRecurrentPayment WebhookEventType = "recurrent_payment"
)

var webhookEventTypes = vocabulary[WebhookEventType]{
	WebhookEventPaymentResult, WebhookEventRecurrentPayment,
}

func (t WebhookEventType) IsValid() bool { return webhookEventTypes.contains(t) }

func (t *WebhookEventType) UnmarshalJSON(b []byte) error {
	return webhookEventTypes.decode(b, "eventType", t)
}

type WebhookAuthType string

const (
	WebhookAuthNone   WebhookAuthType = "none"
	WebhookAuthBasic  WebhookAuthType = "basic"
	WebhookAuthAPIKey WebhookAuthType = "api_key"
)

var webhookAuthTypes = vocabulary[WebhookAuthType]{
	WebhookAuthNone, WebhookAuthBasic, WebhookAuthAPIKey,
}

func (t WebhookAuthType) IsValid() bool { return webhookAuthTypes.contains(t) }

func (t *WebhookAuthType) UnmarshalJSON(b []byte) error {
	return webhookAuthTypes.decode(b, "authType", t)
}

// vocabulary is the shared strict-decode machinery behind every enum.
type vocabulary[T ~string] []T

func (v vocabulary[T]) contains(val T) bool {
	for _, m := range v {
		if m == val {
			return true
		}
	}
	return false
}

func (v vocabulary[T]) decode(b []byte, field string, dst *T) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &ValidationError{Field: field, Reason: "expected a string literal"}
	}
	val := T(s)
	if !v.contains(val) {
		return &ValidationError{Field: field, Reason: "unknown literal " + s}
	}
	*dst = val
	return nil
}

// Amount is a priced total. A nil Amount value means the upstream sent
// an explicit null (free products report zero/absent amounts).
type Amount struct {
	Amount   *float64 `json:"amount"`
	Currency Currency `json:"currency"`
}

// Buyer identifies the purchasing party.
type Buyer struct {
	Email string `json:"email"`
}
