package email

// Template names
const (
	TemplateBookingSubmitted       = "booking_submitted"
	TemplateBookingApproved        = "booking_approved"
	TemplateBookingDeclined        = "booking_declined"
	TemplateBookingInfoRequested   = "booking_info_requested"
	TemplateBookingConfirmed       = "booking_confirmed"
	TemplateBookingCancelled       = "booking_cancelled"
	TemplateBookingDepositReleased = "booking_deposit_released"
)

// subjects per template
var subjects = map[string]string{
	TemplateBookingSubmitted:       "New booking for {{.PropertyTitle}}",
	TemplateBookingApproved:        "Your booking at {{.PropertyTitle}} was approved",
	TemplateBookingDeclined:        "Your booking at {{.PropertyTitle}} was declined",
	TemplateBookingInfoRequested:   "The host of {{.PropertyTitle}} needs more details",
	TemplateBookingConfirmed:       "Booking confirmed at {{.PropertyTitle}}",
	TemplateBookingCancelled:       "Booking at {{.PropertyTitle}} cancelled",
	TemplateBookingDepositReleased: "Your deposit for {{.PropertyTitle}} was released",
}

// BaseTemplate is the base layout for all emails
const BaseTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f6f4ef; color: #1f1f1f; }
        .container { max-width: 600px; margin: 0 auto; padding: 40px 20px; }
        .card { background: #ffffff; border-radius: 12px; padding: 32px; border: 1px solid #e6e1d6; }
        h2 { font-size: 22px; margin: 0 0 16px; }
        p { color: #4a4a4a; font-size: 16px; line-height: 1.6; margin: 0 0 16px; }
        .btn { display: inline-block; background: #2f6f5e; color: #ffffff !important; text-decoration: none; padding: 14px 28px; border-radius: 8px; font-weight: 600; }
        .info-box { background: #f1efe9; border-radius: 8px; padding: 16px; margin: 16px 0; }
        .footer { text-align: center; margin-top: 32px; color: #8a8a8a; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            {{.Content}}
        </div>
        <div class="footer">
            <p>You received this email because you have a booking on StayHost.</p>
        </div>
    </div>
</body>
</html>
`

const bookingSummary = `
<div class="info-box">
    <p><strong>Property:</strong> {{.PropertyTitle}}</p>
    <p><strong>When:</strong> {{.Window}}</p>
    {{if .Total}}<p><strong>Total:</strong> {{.Total}}</p>{{end}}
    {{if .Note}}<p><strong>Note:</strong> {{.Note}}</p>{{end}}
</div>
`

var templates = map[string]string{
	TemplateBookingSubmitted: `
<h2>New booking request</h2>
<p>Hi {{.RecipientName}}, a guest submitted a booking.</p>` + bookingSummary + `
<a href="{{.ActionURL}}" class="btn">Review booking</a>
`,
	TemplateBookingApproved: `
<h2>Your booking was approved</h2>
<p>Hi {{.RecipientName}}, the host approved your booking. Complete payment to confirm it.</p>` + bookingSummary + `
<a href="{{.ActionURL}}" class="btn">Pay now</a>
`,
	TemplateBookingDeclined: `
<h2>Your booking was declined</h2>
<p>Hi {{.RecipientName}}, unfortunately the host declined your booking.</p>` + bookingSummary,
	TemplateBookingInfoRequested: `
<h2>The host has a question</h2>
<p>Hi {{.RecipientName}}, the host needs more details before deciding. Your dates are released until you resubmit.</p>` + bookingSummary + `
<a href="{{.ActionURL}}" class="btn">Update booking</a>
`,
	TemplateBookingConfirmed: `
<h2>Booking confirmed</h2>
<p>Hi {{.RecipientName}}, payment is complete and the booking is confirmed.</p>` + bookingSummary + `
<a href="{{.ActionURL}}" class="btn">View booking</a>
`,
	TemplateBookingCancelled: `
<h2>Booking cancelled</h2>
<p>Hi {{.RecipientName}}, this booking was cancelled. Any pending payment was voided.</p>` + bookingSummary,
	TemplateBookingDepositReleased: `
<h2>Deposit released</h2>
<p>Hi {{.RecipientName}}, the security deposit hold for your booking was released.</p>` + bookingSummary,
}
