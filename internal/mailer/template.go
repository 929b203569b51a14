package mailer

import "html/template"

var resetTemplate = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 500px; margin: auto; padding: 20px; border-radius: 10px; background: #ffffff; text-align: center;">
  <h1 style="color: #FFA500; font-size: 50px">Time Table Generator</h1>

  <h2 style="color: #000; margin-top: 20px;">Hello {{.FullName}},</h2>

  <p style="color: #333; font-size: 16px; padding: 0 20px;">
    We have received a request for changing your password for Time Table Generator.
  </p>

  <a href="{{.ResetURL}}"
    style="display: inline-block; padding: 12px 24px; margin: 20px auto; font-size: 16px; font-weight: bold;
    color: #ffffff; background: #007bff; border-radius: 5px; text-decoration: none;">
    Reset Password
  </a>

  <p style="color: #ff0000; font-size: 14px; margin-top: 10px;">
    This link is valid for only {{.ValidMinutes}} minutes. Please reset your password before it expires.
  </p>

  <p style="color: #777; font-size: 14px; padding: 0 20px;">
    If you didn&rsquo;t request this, you can safely ignore this email.
  </p>

  <hr style="border: none; border-top: 1px solid #ddd; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">
    <strong>Time Table Generator</strong><br>
    The Most Loved Scheduling Tool
  </p>
</div>
`))
