package notifications

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/you/foodauth/domain"
)

// messageCreator is the part of the Twilio API the sender uses.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSMSSender implements domain.SMSSender
type TwilioSMSSender struct {
	api        messageCreator
	fromNumber string
	log        zerolog.Logger
}

// NewTwilioSMSSender creates a new Twilio SMS sender. Without a from number
// the code is logged instead of sent.
func NewTwilioSMSSender(accountSID, authToken, fromNumber string, log zerolog.Logger) *TwilioSMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSSender{
		api:        client.Api,
		fromNumber: fromNumber,
		log:        log.With().Str("component", "sms").Logger(),
	}
}

// SendOTP implements domain.SMSSender
func (t *TwilioSMSSender) SendOTP(ctx context.Context, phone, code string) error {
	body := fmt.Sprintf("Your verification code is: %s", code)

	if t.fromNumber == "" {
		t.log.Info().Str("to", phone).Str("code", code).Msg("sms delivery disabled, logging OTP")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(t.fromNumber)
	params.SetBody(body)

	if _, err := t.api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	t.log.Debug().Str("to", phone).Msg("otp sms sent")
	return nil
}

var _ domain.SMSSender = (*TwilioSMSSender)(nil)
