package sns

import "context"

// OtpNotifier delivers password-reset codes by SMS for deployments where the
// recipient identifier is a phone number.
type OtpNotifier struct {
	sender SMSSender
}

func NewOtpNotifier(sender SMSSender) *OtpNotifier {
	return &OtpNotifier{sender: sender}
}

func (n *OtpNotifier) Send(ctx context.Context, recipient, code string) error {
	return n.sender.SendSMS(ctx, recipient, "Your password reset code: "+code+" (valid 10 minutes)")
}
