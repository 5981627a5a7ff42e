package smtp

import (
	"context"
	"fmt"
)

// OtpNotifier delivers password-reset codes by email.
type OtpNotifier struct {
	mailer Mailer
}

func NewOtpNotifier(mailer Mailer) *OtpNotifier {
	return &OtpNotifier{mailer: mailer}
}

func (n *OtpNotifier) Send(_ context.Context, recipient, code string) error {
	return n.mailer.SendEmail(recipient, "Password Reset OTP", renderOtpEmail(code))
}

func renderOtpEmail(code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Password Reset OTP</title></head>
<body style="margin:0;padding:0;background-color:#f4f6f8;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0">
    <tr>
      <td align="center" style="padding:40px 0;">
        <table width="480" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:12px;padding:32px;">
          <tr>
            <td style="font-size:20px;font-weight:600;color:#111827;">Password Reset Request</td>
          </tr>
          <tr>
            <td style="padding-top:12px;font-size:14px;color:#374151;line-height:1.6;">
              Use the OTP below to reset your password. This code is valid for 10 minutes.
            </td>
          </tr>
          <tr>
            <td align="center" style="padding:28px 0;">
              <div style="display:inline-block;padding:14px 26px;font-size:28px;font-weight:700;letter-spacing:6px;color:#111827;background:#f3f4f6;border-radius:8px;">%s</div>
            </td>
          </tr>
          <tr>
            <td style="font-size:13px;color:#6b7280;line-height:1.6;">
              If you did not request a password reset, you can safely ignore this email.
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, code)
}
