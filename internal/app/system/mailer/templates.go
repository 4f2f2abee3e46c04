// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ManagerEmailData holds data for manager change email templates.
type ManagerEmailData struct {
	SiteName string
	ListName string
	ListURL  string
	ByName   string // who made the change
}

// BuildManagerAddedEmail creates the email sent to a newly added list manager.
func BuildManagerAddedEmail(data ManagerEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("You are now a manager of %s", data.ListName),
		TextBody: buildManagerText(data, true),
		HTMLBody: buildManagerHTML(data, true),
	}
}

// BuildManagerRemovedEmail creates the email sent to a removed list manager.
func BuildManagerRemovedEmail(data ManagerEmailData) Email {
	return Email{
		To:       "",
		Subject:  fmt.Sprintf("You are no longer a manager of %s", data.ListName),
		TextBody: buildManagerText(data, false),
		HTMLBody: buildManagerHTML(data, false),
	}
}

func buildManagerText(data ManagerEmailData, added bool) string {
	var buf bytes.Buffer
	if added {
		fmt.Fprintf(&buf, "%s made you a manager of the list %q.\n\n", data.ByName, data.ListName)
		buf.WriteString("You can now edit the list and its membership:\n")
		buf.WriteString(data.ListURL + "\n")
	} else {
		fmt.Fprintf(&buf, "%s removed you as a manager of the list %q.\n\n", data.ByName, data.ListName)
		buf.WriteString("You can still view the list here:\n")
		buf.WriteString(data.ListURL + "\n")
	}
	fmt.Fprintf(&buf, "\nThis is an automated message from %s.\n", data.SiteName)
	return buf.String()
}

func buildManagerHTML(data ManagerEmailData, added bool) string {
	name := "manager-removed"
	body := managerRemovedHTMLTemplate
	if added {
		name = "manager-added"
		body = managerAddedHTMLTemplate
	}
	tmpl := template.Must(template.New(name).Parse(body))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const managerAddedHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Manager Added</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                {{.ByName}} made you a manager of the list <strong>{{.ListName}}</strong>.
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.ListURL}}" style="display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 16px; border-radius: 6px;">
                      Open List
                    </a>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const managerRemovedHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Manager Removed</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                {{.ByName}} removed you as a manager of the list <strong>{{.ListName}}</strong>.
              </p>
              <p style="margin: 0; font-size: 14px; color: #6b7280;">
                You can still view the list <a href="{{.ListURL}}" style="color: #4f46e5;">here</a>.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
