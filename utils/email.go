package utils

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	"strings"
	texttemplate "text/template"
)

// Email is one outgoing message.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

const (
	TemplateBookingConfirmation = "booking-confirmation"
	TemplateOfferCampaign       = "offer-campaign"
	TemplateReviewReply         = "review-reply"
	TemplateContactMessage      = "contact-message"
	TemplateWelcome             = "welcome"
)

// DefaultTemplate is the built-in subject/body pair used when no template
// row has been stored for a key.
type DefaultTemplate struct {
	Category string
	Subject  string
	Body     string
}

const emailHeader = `<div style="font-family:Helvetica,Arial,sans-serif;max-width:600px;margin:0 auto;border:1px solid #eee;">
<div style="background:#004878;padding:24px;text-align:center;"><h1 style="color:#fff;letter-spacing:4px;margin:0;">HEAVEN PALACE</h1></div>
<div style="padding:30px;">`

const emailFooter = `</div>
<div style="background:#333;color:#bbb;padding:20px;text-align:center;font-size:12px;">Heaven Palace Hotel, Kandy</div>
</div>`

var DefaultTemplates = map[string]DefaultTemplate{
	TemplateBookingConfirmation: {
		Category: "transactional",
		Subject:  "Booking Confirmation #{{.Reference}}",
		Body: emailHeader + `<h2>Thank you for booking with Heaven Palace!</h2>
<p>Dear {{.GuestName}},</p>
<p>We have received your booking request for <strong>{{.RoomName}}</strong>.</p>
<p><strong>Dates:</strong> {{.CheckIn}} to {{.CheckOut}} ({{.Nights}} night(s), {{.Guests}} guest(s))</p>
<table style="width:100%;font-size:14px;">{{range .Lines}}<tr><td>{{.Label}}</td><td style="text-align:right;">{{lkr .Amount}}</td></tr>{{end}}</table>
<p><strong>Total:</strong> {{.Total}}</p>
<p>Status: <strong>Pending Approval</strong></p>
<p>Our team will contact you shortly{{if .Phone}} via WhatsApp ({{.Phone}}){{end}} to confirm details.</p>` + emailFooter,
	},
	TemplateOfferCampaign: {
		Category: "marketing",
		Subject:  "New Offer: {{.Title}}",
		Body: emailHeader + `{{if .Image}}<img src="{{.Image}}" style="width:100%;height:250px;object-fit:cover;" />{{end}}
<h3 style="color:#c5a47e;letter-spacing:2px;">EXCLUSIVE OFFER</h3>
<h1 style="color:#004878;">{{.Title}}</h1>
<p style="color:#666;">{{.Description}}</p>
<p style="font-size:28px;color:#c5a47e;font-weight:bold;">{{.PriceLabel}}</p>
<a href="{{.Link}}" style="background:#004878;color:#fff;padding:15px 30px;text-decoration:none;">Claim This Offer</a>` + emailFooter,
	},
	TemplateReviewReply: {
		Category: "transactional",
		Subject:  "A reply to your Heaven Palace review",
		Body: emailHeader + `<p>Dear {{.GuestName}},</p>
<p>Thank you for your {{.Rating}}-star review. Our team replied:</p>
<blockquote style="border-left:3px solid #c5a47e;padding-left:12px;">{{.Reply}}</blockquote>` + emailFooter,
	},
	TemplateContactMessage: {
		Category: "internal",
		Subject:  "Website enquiry from {{.Name}}",
		Body: emailHeader + `<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
<p><strong>Subject:</strong> {{.Topic}}</p>
<p>{{.Message}}</p>` + emailFooter,
	},
	TemplateWelcome: {
		Category: "lifecycle",
		Subject:  "Welcome to Relax & Reward, {{.GuestName}}",
		Body: emailHeader + `<p>Ayubowan {{.GuestName}},</p>
<p>Your Relax &amp; Reward account is ready. Sign in to collect points on every stay.</p>` + emailFooter,
	},
}

var emailFuncs = map[string]any{
	"lkr": FormatLKR,
}

func parseEmail(subjectSrc, bodySrc string) (*texttemplate.Template, *htmltemplate.Template, error) {
	subj, err := texttemplate.New("subject").Funcs(emailFuncs).Parse(subjectSrc)
	if err != nil {
		return nil, nil, fmt.Errorf("parse subject: %w", err)
	}
	body, err := htmltemplate.New("body").Funcs(emailFuncs).Parse(bodySrc)
	if err != nil {
		return nil, nil, fmt.Errorf("parse body: %w", err)
	}
	return subj, body, nil
}

// ParseEmail checks that a subject/body pair compiles.
func ParseEmail(subjectSrc, bodySrc string) error {
	_, _, err := parseEmail(subjectSrc, bodySrc)
	return err
}

// RenderEmail renders a subject (plain text) and body (HTML, auto-escaped)
// against data.
func RenderEmail(subjectSrc, bodySrc string, data any) (Email, error) {
	subj, body, err := parseEmail(subjectSrc, bodySrc)
	if err != nil {
		return Email{}, err
	}

	var sb, bb bytes.Buffer
	if err := subj.Execute(&sb, data); err != nil {
		return Email{}, fmt.Errorf("render subject: %w", err)
	}
	if err := body.Execute(&bb, data); err != nil {
		return Email{}, fmt.Errorf("render body: %w", err)
	}
	return Email{Subject: strings.TrimSpace(sb.String()), HTML: bb.String()}, nil
}

// FormatLKR renders whole rupees with thousands separators, e.g. "LKR 89,500".
func FormatLKR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var out strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	if neg {
		return "LKR -" + out.String()
	}
	return "LKR " + out.String()
}
