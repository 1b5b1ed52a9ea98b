package notify

import (
	"strings"

	"careers-api/internal/models"
)

// Template identifies one outbound email template.
type Template string

const (
	TemplateReceived       Template = "application_received"
	TemplateAccepted       Template = "application_accepted"
	TemplateRejected       Template = "application_rejected"
	TemplateRevisionNeeded Template = "revision_needed"
)

const notesPlaceholder = "NOTES_PLACEHOLDER"

type templateContent struct {
	Subject string
	Text    string
	HTML    string
}

var templates = map[Template]templateContent{
	TemplateReceived: {
		Subject: "تم استلام طلبك - الشاطوري",
		Text: `شكراً لتقديمك على وظيفة في الشاطوري.

تم استلام طلبك وسيتم مراجعته في أقرب وقت.
سنقوم بإخطارك بأي تحديثات عبر البريد الإلكتروني.

مع تحيات فريق التوظيف
الشاطوري`,
		HTML: `<div dir="rtl" style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2 style="color: #2563eb;">شكراً لتقديمك على وظيفة في الشاطوري</h2>
  <p>تم استلام طلبك وسيتم مراجعته في أقرب وقت.</p>
  <p>سنقوم بإخطارك بأي تحديثات عبر البريد الإلكتروني.</p>
  <br/>
  <p>مع تحيات فريق التوظيف</p>
  <p style="font-weight: bold; color: #2563eb;">الشاطوري</p>
</div>`,
	},
	TemplateAccepted: {
		Subject: "تهانينا! تم قبول طلبك - الشاطوري",
		Text: `تهانينا!

يسعدنا إخبارك بأنه تم قبول طلبك للوظيفة.
سيقوم فريقنا بالتواصل معك قريباً لإكمال الإجراءات.

مع تحيات فريق التوظيف
الشاطوري`,
		HTML: `<div dir="rtl" style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2 style="color: #16a34a;">تهانينا! 🎉</h2>
  <p>يسعدنا إخبارك بأنه تم قبول طلبك للوظيفة.</p>
  <p>سيقوم فريقنا بالتواصل معك قريباً لإكمال الإجراءات.</p>
  <br/>
  <p>مع تحيات فريق التوظيف</p>
  <p style="font-weight: bold; color: #2563eb;">الشاطوري</p>
</div>`,
	},
	TemplateRejected: {
		Subject: "تحديث بخصوص طلبك - الشاطوري",
		Text: `عزيزي المتقدم،

نشكرك على اهتمامك بالانضمام إلى فريق الشاطوري.
نأسف لإخبارك بأنه تم رفض طلبك في هذه المرحلة.

نتمنى لك التوفيق في مساعيك المستقبلية.

مع تحيات فريق التوظيف
الشاطوري`,
		HTML: `<div dir="rtl" style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>عزيزي المتقدم،</h2>
  <p>نشكرك على اهتمامك بالانضمام إلى فريق الشاطوري.</p>
  <p>نأسف لإخبارك بأنه تم رفض طلبك في هذه المرحلة.</p>
  <p>نتمنى لك التوفيق في مساعيك المستقبلية.</p>
  <br/>
  <p>مع تحيات فريق التوظيف</p>
  <p style="font-weight: bold; color: #2563eb;">الشاطوري</p>
</div>`,
	},
	TemplateRevisionNeeded: {
		Subject: "مطلوب تعديلات على طلبك - الشاطوري",
		Text: `عزيزي المتقدم،

بعد مراجعة طلبك، نحتاج إلى بعض التعديلات.
يرجى مراجعة التعليقات وتحديث طلبك.

NOTES_PLACEHOLDER

مع تحيات فريق التوظيف
الشاطوري`,
		HTML: `<div dir="rtl" style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2 style="color: #ea580c;">عزيزي المتقدم،</h2>
  <p>بعد مراجعة طلبك، نحتاج إلى بعض التعديلات.</p>
  <p>يرجى مراجعة التعليقات التالية وتحديث طلبك:</p>
  <div style="background-color: #fff7ed; border-right: 4px solid #ea580c; padding: 1rem; margin: 1rem 0;">
    NOTES_PLACEHOLDER
  </div>
  <br/>
  <p>مع تحيات فريق التوظيف</p>
  <p style="font-weight: bold; color: #2563eb;">الشاطوري</p>
</div>`,
	},
}

// Render resolves a template and interpolates the revision note when present.
func Render(tpl Template, notes string) (subject, text, html string, ok bool) {
	content, ok := templates[tpl]
	if !ok {
		return "", "", "", false
	}

	text = content.Text
	html = content.HTML
	if tpl == TemplateRevisionNeeded && notes != "" {
		text = strings.ReplaceAll(text, notesPlaceholder, notes)
		html = strings.ReplaceAll(html, notesPlaceholder, notes)
	}

	return content.Subject, text, html, true
}

// TemplateForStatus maps a status transition to its notification template.
func TemplateForStatus(status models.Status) (Template, bool) {
	switch status {
	case models.StatusAccepted:
		return TemplateAccepted, true
	case models.StatusRejected:
		return TemplateRejected, true
	case models.StatusNeedsRevision:
		return TemplateRevisionNeeded, true
	default:
		return "", false
	}
}
