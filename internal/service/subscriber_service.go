package service

import (
	"context"
	"encoding/json"
	"regexp"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/domain"
	"github.com/awadali7/Pro-shopify-backend/internal/shopify"
	apperrors "github.com/awadali7/Pro-shopify-backend/pkg/errors"
)

// Validation messages per variant
const (
	MsgInvalidEmail  = "Invalid email address."
	MsgEmailRequired = "Email is required"
)

// SubscriberTag marks customers created by the strict variant
const SubscriberTag = "Email Subscriber"

// consentTimeLayout is an ISO-8601 UTC timestamp with milliseconds
const consentTimeLayout = "2006-01-02T15:04:05.000Z07:00"

var looseEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// emailValidator returns the shared validator with the loose_email tag registered.
// loose_email only asks for something@something.something anywhere in the value,
// far weaker than the built-in email tag.
func emailValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
			return looseEmailPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// SubscriptionResult carries the successful customers.json response
type SubscriptionResult struct {
	Upstream json.RawMessage // whole response body
	Customer json.RawMessage // its "customer" object, null when absent
}

type SubscriberService struct {
	client  ShopifyAPI
	variant domain.Variant
	now     func() time.Time
	logger  *zap.Logger
}

// NewSubscriberService creates the email subscriber for a variant
func NewSubscriberService(variant domain.Variant, client ShopifyAPI, logger *zap.Logger) *SubscriberService {
	return &SubscriberService{
		client:  client,
		variant: variant,
		now:     time.Now,
		logger:  logger,
	}
}

// Validate checks an email against the variant's rule without calling Shopify
func (s *SubscriberService) Validate(email string) error {
	if s.variant == domain.VariantLenient {
		if err := emailValidator().Var(email, "required"); err != nil {
			return &apperrors.ErrValidation{Message: MsgEmailRequired, Fields: map[string]string{"email": "required"}}
		}
		return nil
	}
	if err := emailValidator().Var(email, "required,loose_email"); err != nil {
		return &apperrors.ErrValidation{Message: MsgInvalidEmail, Fields: map[string]string{"email": "invalid"}}
	}
	return nil
}

// CustomerInput builds the customer payload the variant sends
func (s *SubscriberService) CustomerInput(email string) shopify.CustomerInput {
	if s.variant == domain.VariantLenient {
		return shopify.CustomerInput{Email: email, AcceptsMarketing: true}
	}
	return shopify.CustomerInput{
		Email:            email,
		Tags:             SubscriberTag,
		AcceptsMarketing: true,
		EmailMarketingConsent: &shopify.EmailMarketingConsent{
			State:            "subscribed",
			ConsentUpdatedAt: s.now().UTC().Format(consentTimeLayout),
		},
	}
}

// Subscribe validates the email and creates a marketing-subscribed customer.
// Invalid input never reaches Shopify.
func (s *SubscriberService) Subscribe(ctx context.Context, req domain.SubscriptionRequest) (*SubscriptionResult, error) {
	if err := s.Validate(req.Email); err != nil {
		return nil, err
	}

	resp, err := s.client.CreateCustomer(ctx, s.CustomerInput(req.Email))
	if err != nil {
		return nil, err
	}

	result := &SubscriptionResult{Upstream: resp.Body, Customer: json.RawMessage("null")}
	if !json.Valid(resp.Body) {
		// Keep the response encodable even if Shopify answered 2xx with non-JSON
		quoted, _ := json.Marshal(string(resp.Body))
		result.Upstream = quoted
		return result, nil
	}

	var envelope struct {
		Customer json.RawMessage `json:"customer"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err == nil && len(envelope.Customer) > 0 {
		result.Customer = envelope.Customer
	}

	s.logger.Info("Customer subscribed", zap.String("variant", string(s.variant)))
	return result, nil
}
